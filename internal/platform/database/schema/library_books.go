package schema

import "github.com/doug-martin/goqu/v9/exp"

// BooksTable represents the 'library.books' table
type BooksTable struct {
	Table           string
	ID              string
	ISBN            string
	Title           string
	Author          string
	PublicationYear string
}

// Books is the schema definition for library.books
var Books = BooksTable{
	Table:           "books",
	ID:              "bookid",
	ISBN:            "isbn",
	Title:           "title",
	Author:          "author",
	PublicationYear: "publicationyear",
}

// Ident returns the schema-qualified table identifier.
func (t BooksTable) Ident() exp.IdentifierExpression { return table(t.Table) }

// Columns returns all standard column names
func (t BooksTable) Columns() []any {
	return []any{t.ID, t.ISBN, t.Title, t.Author, t.PublicationYear}
}
