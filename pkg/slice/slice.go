// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice holds the small generic helpers services use when shaping
repository results into response lists.

Lists returned to HTTP clients are never nil, so an empty result encodes as
[] instead of null.
*/
package slice

// Map transforms every element of input. The result is never nil.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// OrEmpty returns input, or an empty non-nil slice when input is nil.
func OrEmpty[T any](input []T) []T {
	if input == nil {
		return []T{}
	}
	return input
}
