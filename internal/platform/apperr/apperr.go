// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the library service.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Taxonomy:

  - VALIDATION_ERROR: bad constructor or request input. Rendered as 400.
  - INVALID_STATE: an illegal state transition or transaction misuse. Rendered as 409.
  - NOT_FOUND: only raised at the presentation boundary; repositories and services
    report a missing entity as an absent (nil) result.
  - INTERNAL_ERROR: anything unexpected. The cause is logged, never sent to clients.

Every error that leaves the service layer should be an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError carries a machine-readable code, a client-safe message, the HTTP
// status it renders as, and optional field details. Cause never leaves the
// process.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

func newError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound reports a missing resource, e.g. NotFound("User") reads "User not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, resource+" not found")
}

// Conflict reports a unique-constraint violation.
func Conflict(msg string) *AppError {
	return newError(CodeConflict, http.StatusConflict, msg)
}

// InvalidState reports an operation that is illegal in the current state of
// an entity (a copy already on loan) or of a transaction (commit without
// begin). Retrying the same call fails the same way.
func InvalidState(msg string) *AppError {
	return newError(CodeInvalidState, http.StatusConflict, msg)
}

// ValidationError reports bad input with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	err := newError(CodeValidation, http.StatusBadRequest, msg)
	err.Details = details
	return err
}

// # Server Errors (5xx)

// Internal wraps an unexpected failure. Only the generic message reaches
// clients; cause is kept for logs and errors.Is.
func Internal(cause error) *AppError {
	err := newError(CodeInternal, http.StatusInternalServerError, "An unexpected error occurred")
	err.Cause = cause
	return err
}

// # Codes

const (
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err (or any error in its chain) is an [*AppError]
// carrying the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
