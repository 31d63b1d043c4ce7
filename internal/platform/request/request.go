// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil reads path, query and body input from HTTP requests and
turns malformed input into VALIDATION_ERROR values, so handlers can pass
every failure straight to respond.Error.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/library/internal/platform/validate"
)

// MaxBodyBytes caps request bodies. Every body this API accepts is a small
// JSON object.
const MaxBodyBytes = 64 << 10

// DecodeJSON decodes exactly one JSON object from the body into target.
// Unknown fields, trailing data and oversized bodies are rejected.
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(request.Body, MaxBodyBytes+1))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param returns the named chi path parameter as-is.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// IntParam parses the named path parameter as a positive integer ID.
func IntParam(request *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(request, name))
	if err != nil || value <= 0 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}
	return value, nil
}

// Query returns the named query-string value with surrounding space removed.
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}
