// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// It is used for identifiers that exist before a row does, such as the
// shelf label of a physical copy. Because v7 values are time-sortable they
// stay B-tree friendly when they later become primary keys.
package uuidv7

import "github.com/google/uuid"

// New returns a fresh UUIDv7 in canonical lower-case form. It panics if the
// OS random source fails.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
