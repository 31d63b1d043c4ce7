// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate collects field-level failures and reports them as one
VALIDATION_ERROR.

Domain constructors (NewUser, NewBook, NewPublicationDate) and services
validate input before any storage call, so a rejected request never reaches
the database. Every failing rule is reported, not only the first.
*/
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/taibuivan/library/internal/platform/apperr"
)

// messageFailed is the top-level message of every validation error.
const messageFailed = "Validation failed"

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates failures through a chainable API. Use a fresh value
// per operation; it is not safe for concurrent use.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the value is empty after trimming whitespace.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// MaxLen fails if the value has more than max Unicode code points.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > max, fmt.Sprintf("Maximum %d characters", max))
}

// Positive fails if the value is zero or negative.
func (v *Validator) Positive(field string, value int) *Validator {
	return v.Custom(field, value <= 0, "Must be a positive number")
}

// Range fails if the value is outside [min, max].
func (v *Validator) Range(field string, value, min, max int) *Validator {
	return v.Custom(field, value < min || value > max, fmt.Sprintf("Must be between %d and %d", min, max))
}

// UUID fails unless the value is a hyphenated UUID of any version.
func (v *Validator) UUID(field, value string) *Validator {
	return v.Custom(field, len(value) != 36 || uuid.Validate(value) != nil, "Must be a valid UUID")
}

// OneOf fails if the value is not one of allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, candidate := range allowed {
		if value == candidate {
			return v
		}
	}
	return v.Custom(field, true, "Must be one of: "+strings.Join(allowed, ", "))
}

// Custom records message against field when failed is true.
//
//	v.Custom("year", year > currentYear, "Publication year cannot be in the future")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err returns the accumulated VALIDATION_ERROR, or nil when every rule passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(messageFailed, v.errs...)
}

// RequiredError builds a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError(messageFailed, apperr.FieldError{Field: field, Message: message})
}
