// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column identifiers of the library database.
//
// Repositories build queries from these definitions instead of string literals
// so that a renamed column is a one-line change.
package schema

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// Name is the PostgreSQL schema every library table lives in.
const Name = "library"

// table qualifies a table name with the library schema.
func table(name string) exp.IdentifierExpression {
	return goqu.S(Name).Table(name)
}
