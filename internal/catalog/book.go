// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"
	"time"

	"github.com/taibuivan/library/internal/platform/validate"
)

// Book is a catalogued title. It is immutable once constructed; ID is set by
// the repository when the book is first stored.
type Book struct {
	ID              int    `json:"id"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publication_year"`
}

// Global field names for validation
const (
	FieldISBN            = "isbn"
	FieldTitle           = "title"
	FieldAuthor          = "author"
	FieldPublicationYear = "publication_year"
	FieldYear            = "year"
	FieldEra             = "era"
	FieldCopies          = "copies"
	FieldBook            = "book"
	FieldCopyID          = "copy_id"
	FieldState           = "state"
)

/*
NewBook validates and constructs an unsaved [Book].

Description: ISBN, title and author are trimmed and must be non-empty. The
publication year is an astronomical year (0 is 1 BCE) and must not be later
than the current year. Every failing field is reported in the returned
validation error.
*/
func NewBook(isbn, title, author string, publicationYear int) (*Book, error) {
	isbn = strings.TrimSpace(isbn)
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	validator := &validate.Validator{}
	validator.
		Required(FieldISBN, isbn).
		Required(FieldTitle, title).
		Required(FieldAuthor, author).
		Custom(FieldPublicationYear, publicationYear > time.Now().Year(), "Publication year cannot be in the future")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &Book{
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		PublicationYear: publicationYear,
	}, nil
}

// Published interprets PublicationYear as an astronomical year.
func (book *Book) Published() (PublicationDate, error) {
	return FromAstronomicalYear(book.PublicationYear)
}

// publishedOrNil returns nil when the stored year is not a valid date.
func (book *Book) publishedOrNil() *PublicationDate {
	date, err := book.Published()
	if err != nil {
		return nil
	}
	return &date
}
