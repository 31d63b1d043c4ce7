// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"encoding/json"

	"github.com/taibuivan/library/internal/platform/apperr"
	"github.com/taibuivan/library/internal/platform/validate"
	"github.com/taibuivan/library/pkg/uuidv7"
)

// CopyState is the lending state of a physical copy.
type CopyState string

const (
	// CopyAvailable means the copy is on the shelf.
	CopyAvailable CopyState = "available"
	// CopyOnLoan means the copy is checked out to a user.
	CopyOnLoan CopyState = "on_loan"
)

// IsValid reports whether s is a recognised [CopyState] value.
func (s CopyState) IsValid() bool {
	switch s {
	case CopyAvailable, CopyOnLoan:
		return true
	}
	return false
}

var (
	// ErrCopyNotAvailable is returned when lending a copy that is already on loan.
	ErrCopyNotAvailable = apperr.InvalidState("Copy is not available for loan")

	// ErrCopyNotOnLoan is returned when returning a copy that is not on loan.
	ErrCopyNotOnLoan = apperr.InvalidState("Only loaned copies can be returned")
)

// Copy is one physical exemplar of a [Book].
//
// Its identifier is generated on construction and never changes. The state
// moves between available and on loan only through [Copy.MarkOnLoan] and
// [Copy.MarkAvailable].
type Copy struct {
	id    string
	book  *Book
	state CopyState
}

// NewCopy creates an available copy of book with a fresh identifier.
func NewCopy(book *Book) (*Copy, error) {
	if book == nil {
		return nil, validate.RequiredError(FieldBook, "This field is required")
	}

	return &Copy{
		id:    uuidv7.New(),
		book:  book,
		state: CopyAvailable,
	}, nil
}

// RestoreCopy rehydrates a stored copy. Only the storage layer calls it.
func RestoreCopy(id string, book *Book, state CopyState) (*Copy, error) {
	validator := &validate.Validator{}
	validator.
		UUID(FieldCopyID, id).
		Custom(FieldBook, book == nil, "This field is required").
		Custom(FieldState, !state.IsValid(), "Must be one of: available, on_loan")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &Copy{id: id, book: book, state: state}, nil
}

// ID returns the immutable copy identifier.
func (bookCopy *Copy) ID() string { return bookCopy.id }

// Book returns the book this copy belongs to.
func (bookCopy *Copy) Book() *Book { return bookCopy.book }

// State returns the current lending state.
func (bookCopy *Copy) State() CopyState { return bookCopy.state }

// MarkOnLoan moves an available copy to on loan.
func (bookCopy *Copy) MarkOnLoan() error {
	if bookCopy.state != CopyAvailable {
		return ErrCopyNotAvailable
	}
	bookCopy.state = CopyOnLoan
	return nil
}

// MarkAvailable moves a loaned copy back to available.
func (bookCopy *Copy) MarkAvailable() error {
	if bookCopy.state != CopyOnLoan {
		return ErrCopyNotOnLoan
	}
	bookCopy.state = CopyAvailable
	return nil
}

type copyJSON struct {
	ID     string    `json:"id"`
	BookID int       `json:"book_id"`
	State  CopyState `json:"state"`
}

// MarshalJSON renders the copy with its book reduced to an identifier.
func (bookCopy *Copy) MarshalJSON() ([]byte, error) {
	return json.Marshal(copyJSON{ID: bookCopy.id, BookID: bookCopy.book.ID, State: bookCopy.state})
}
