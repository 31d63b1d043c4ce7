package schema

import "github.com/doug-martin/goqu/v9/exp"

// LoansTable represents the 'library.loans' table
type LoansTable struct {
	Table      string
	ID         string
	CopyID     string
	UserID     string
	LoanedAt   string
	ReturnedAt string
}

// Loans is the schema definition for library.loans
var Loans = LoansTable{
	Table:      "loans",
	ID:         "loanid",
	CopyID:     "copyid",
	UserID:     "userid",
	LoanedAt:   "loanedat",
	ReturnedAt: "returnedat",
}

// Ident returns the schema-qualified table identifier.
func (t LoansTable) Ident() exp.IdentifierExpression { return table(t.Table) }

// Columns returns all standard column names
func (t LoansTable) Columns() []any {
	return []any{t.ID, t.CopyID, t.UserID, t.LoanedAt, t.ReturnedAt}
}
