package schema

import "github.com/doug-martin/goqu/v9/exp"

// UsersTable represents the 'library.users' table
type UsersTable struct {
	Table string
	ID    string
	Name  string
}

// Users is the schema definition for library.users
var Users = UsersTable{
	Table: "users",
	ID:    "userid",
	Name:  "name",
}

// Ident returns the schema-qualified table identifier.
func (t UsersTable) Ident() exp.IdentifierExpression { return table(t.Table) }

// Columns returns all standard column names
func (t UsersTable) Columns() []any { return []any{t.ID, t.Name} }
