package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/library/internal/platform/apperr"
	"github.com/taibuivan/library/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Ada", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
		{"tabs_and_newlines", "name", "\t\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_UUID checks the UUID format rule used for copy identifiers.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"v7_lower", "01928c3e-7b5a-7cde-8f00-0123456789ab", true},
		{"v4_upper", "6BA7B810-9DAD-41D1-80B4-00C04FD430C8", true},
		{"truncated", "01928c3e-7b5a-7cde-8f00", false},
		{"braced", "{01928c3e-7b5a-7cde-8f00-0123456789ab}", false},
		{"urn", "urn:uuid:01928c3e-7b5a-7cde-8f00-0123456789ab", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.UUID("copy_id", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "Ada").
		MaxLen("name", "Ada", 100).
		Positive("copies", 2).
		Range("copies", 2, 0, 10).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("isbn", "").              // Fails
		MaxLen("title", "abcdef", 3).      // Fails
		Positive("year", 0).               // Fails
		OneOf("era", "AD", "BCE", "CE").   // Fails
		Custom("author", false, "ignored"). // Passes
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Len(t, ae.Details, 4)
	assert.Equal(t, "isbn", ae.Details[0].Field)
	assert.Equal(t, "era", ae.Details[3].Field)
}

/*
TestRequiredError builds a one-field error that renders as HTTP 400.
*/
func TestRequiredError(t *testing.T) {
	err := validate.RequiredError("user_id", "User does not exist")

	assert.Equal(t, apperr.CodeValidation, err.Code)
	assert.Equal(t, 400, err.HTTPStatus)
	require.Len(t, err.Details, 1)
	assert.Equal(t, apperr.FieldError{Field: "user_id", Message: "User does not exist"}, err.Details[0])
}
