// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"cmp"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/library/internal/platform/validate"
)

// # Era

// Era distinguishes years before and after the epoch of the common calendar.
type Era string

const (
	EraBCE Era = "BCE"
	EraCE  Era = "CE"
)

// ParseEra accepts "BCE" or "CE" in any letter case. An empty string is CE.
func ParseEra(value string) (Era, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", string(EraCE):
		return EraCE, nil
	case string(EraBCE):
		return EraBCE, nil
	default:
		return "", validate.RequiredError(FieldEra, "Must be one of: BCE, CE")
	}
}

// # Publication Date

// PublicationDate is an era-aware publication year.
//
// It is an immutable value: two dates are equal when year and era are equal,
// and they order by their astronomical year (1 BCE is year 0, 2 BCE is -1).
// The zero value is not a valid date; use [NewPublicationDate].
type PublicationDate struct {
	year int
	era  Era
}

// NewPublicationDate validates and constructs a [PublicationDate].
//
// The year must be positive. CE years must not be later than the current
// calendar year. BCE years carry no upper bound.
func NewPublicationDate(year int, era Era) (PublicationDate, error) {
	return newPublicationDate(year, era, time.Now().Year())
}

func newPublicationDate(year int, era Era, currentYear int) (PublicationDate, error) {
	validator := &validate.Validator{}

	validator.
		Positive(FieldYear, year).
		OneOf(FieldEra, string(era), string(EraBCE), string(EraCE)).
		Custom(FieldYear, era == EraCE && year > currentYear, "Publication year cannot be in the future")

	if err := validator.Err(); err != nil {
		return PublicationDate{}, err
	}

	return PublicationDate{year: year, era: era}, nil
}

// FromAstronomicalYear is the inverse of [PublicationDate.AstronomicalYear].
//
// Values <= 0 map to BCE (0 is 1 BCE, -1 is 2 BCE), positive values map to CE.
func FromAstronomicalYear(astronomicalYear int) (PublicationDate, error) {
	if astronomicalYear <= 0 {
		return NewPublicationDate(1-astronomicalYear, EraBCE)
	}
	return NewPublicationDate(astronomicalYear, EraCE)
}

// Year returns the era-relative year, always positive for a valid date.
func (date PublicationDate) Year() int { return date.year }

// Era returns the era of the date.
func (date PublicationDate) Era() Era { return date.era }

// IsZero reports whether date is the unconstructed zero value.
func (date PublicationDate) IsZero() bool { return date.year == 0 }

// AstronomicalYear projects the date onto a single linear year axis.
func (date PublicationDate) AstronomicalYear() int {
	if date.era == EraBCE {
		return -(date.year - 1)
	}
	return date.year
}

// String renders "<year> BCE" for BCE dates and the plain year for CE.
func (date PublicationDate) String() string {
	if date.era == EraBCE {
		return strconv.Itoa(date.year) + " BCE"
	}
	return strconv.Itoa(date.year)
}

// Equal reports whether both dates have the same year and era.
func (date PublicationDate) Equal(other PublicationDate) bool {
	return date.year == other.year && date.era == other.era
}

// Compare returns -1, 0 or +1 ordering by astronomical year.
func (date PublicationDate) Compare(other PublicationDate) int {
	return cmp.Compare(date.AstronomicalYear(), other.AstronomicalYear())
}

// Before reports whether date is strictly earlier than other.
func (date PublicationDate) Before(other PublicationDate) bool { return date.Compare(other) < 0 }

// After reports whether date is strictly later than other.
func (date PublicationDate) After(other PublicationDate) bool { return date.Compare(other) > 0 }

// CompareDates orders optional dates. An absent date sorts before any present
// one, and two absent dates are equal.
func CompareDates(a, b *PublicationDate) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

// # JSON

type publicationDateJSON struct {
	Year int    `json:"year"`
	Era  string `json:"era"`
}

// MarshalJSON encodes the date as {"year": 350, "era": "BCE"}.
func (date PublicationDate) MarshalJSON() ([]byte, error) {
	if date.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(publicationDateJSON{Year: date.year, Era: string(date.era)})
}

// UnmarshalJSON decodes and validates a date. A missing era means CE.
func (date *PublicationDate) UnmarshalJSON(data []byte) error {
	var raw publicationDateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return validate.ErrInvalidJSON
	}

	era, err := ParseEra(raw.Era)
	if err != nil {
		return err
	}

	parsed, err := NewPublicationDate(raw.Year, era)
	if err != nil {
		return err
	}

	*date = parsed
	return nil
}
