package schema

import "github.com/doug-martin/goqu/v9/exp"

// CopiesTable represents the 'library.copies' table
type CopiesTable struct {
	Table     string
	ID        string
	BookID    string
	State     string
	UpdatedAt string
}

// Copies is the schema definition for library.copies
var Copies = CopiesTable{
	Table:     "copies",
	ID:        "copyid",
	BookID:    "bookid",
	State:     "state",
	UpdatedAt: "updatedat",
}

// Ident returns the schema-qualified table identifier.
func (t CopiesTable) Ident() exp.IdentifierExpression { return table(t.Table) }

// Columns returns all standard column names
func (t CopiesTable) Columns() []any { return []any{t.ID, t.BookID, t.State} }
