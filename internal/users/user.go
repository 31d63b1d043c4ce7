package users

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/library/internal/platform/validate"
)

// MaxNameLength is the longest accepted user name, counted in characters.
const MaxNameLength = 100

// Global field names for validation
const (
	FieldName = "name"
)

// User is a library patron. ID is zero until the repository stores the user.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NewUser validates and constructs an unsaved [User].
func NewUser(name string) (*User, error) {
	name = NormalizeName(name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &User{Name: name}, nil
}

// NormalizeName trims surrounding space and converts the name to Unicode NFC
// so that exact-match lookups do not depend on how the name was composed.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
