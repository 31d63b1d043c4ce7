// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/taibuivan/library/internal/platform/apperr"
	"github.com/taibuivan/library/internal/platform/database"
	"github.com/taibuivan/library/internal/platform/database/schema"
	"github.com/taibuivan/library/internal/platform/dberr"
)

type userRow struct {
	ID   int    `db:"userid"`
	Name string `db:"name"`
}

// PostgresRepository stores users in library.users.
type PostgresRepository struct {
	scope database.Scope
}

// NewPostgresRepository binds the repository to a scope: a
// [database.Standalone] for ad hoc calls or a [database.UnitOfWork].
func NewPostgresRepository(scope database.Scope) *PostgresRepository {
	return &PostgresRepository{scope: scope}
}

/*
Create inserts the user and writes the generated identifier back onto it.

Parameters:
  - ctx: context.Context
  - user: *User (ID must be zero)

Returns:
  - int: The generated identifier
  - error: Storage failures mapped by dberr
*/
func (repository *PostgresRepository) Create(ctx context.Context, user *User) (int, error) {
	query, args, err := database.Builder.
		Insert(schema.Users.Ident()).
		Prepared(true).
		Rows(goqu.Record{schema.Users.Name: user.Name}).
		Returning(schema.Users.ID).
		ToSQL()
	if err != nil {
		return 0, apperr.Internal(err)
	}

	var id int
	err = database.Do(ctx, repository.scope, "users.create", func(ctx context.Context, db database.Executor) error {
		return sqlx.GetContext(ctx, db, &id, query, args...)
	})
	if err != nil {
		return 0, dberr.Wrap(err, "create_user")
	}

	user.ID = id
	return id, nil
}

func (repository *PostgresRepository) GetByID(ctx context.Context, id int) (*User, error) {
	query, args, err := selectUsers().Where(goqu.C(schema.Users.ID).Eq(id)).ToSQL()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var row userRow
	err = database.Do(ctx, repository.scope, "users.get_by_id", func(ctx context.Context, db database.Executor) error {
		return sqlx.GetContext(ctx, db, &row, query, args...)
	})
	if dberr.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_user")
	}

	return &User{ID: row.ID, Name: row.Name}, nil
}

func (repository *PostgresRepository) Exists(ctx context.Context, id int) (bool, error) {
	query, args, err := database.Builder.
		From(schema.Users.Ident()).
		Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(schema.Users.ID).Eq(id)).
		ToSQL()
	if err != nil {
		return false, apperr.Internal(err)
	}

	var count int
	err = database.Do(ctx, repository.scope, "users.exists", func(ctx context.Context, db database.Executor) error {
		return sqlx.GetContext(ctx, db, &count, query, args...)
	})
	if err != nil {
		return false, dberr.Wrap(err, "user_exists")
	}

	return count > 0, nil
}

func (repository *PostgresRepository) GetByName(ctx context.Context, name string) ([]*User, error) {
	return repository.list(ctx, "users.get_by_name", selectUsers().Where(goqu.C(schema.Users.Name).Eq(name)))
}

func (repository *PostgresRepository) GetAll(ctx context.Context) ([]*User, error) {
	return repository.list(ctx, "users.get_all", selectUsers())
}

func (repository *PostgresRepository) list(ctx context.Context, op string, dataset *goqu.SelectDataset) ([]*User, error) {
	query, args, err := dataset.Order(goqu.C(schema.Users.ID).Asc()).ToSQL()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var rows []userRow
	err = database.Do(ctx, repository.scope, op, func(ctx context.Context, db database.Executor) error {
		return sqlx.SelectContext(ctx, db, &rows, query, args...)
	})
	if err != nil {
		return nil, dberr.Wrap(err, op)
	}

	result := make([]*User, 0, len(rows))
	for _, row := range rows {
		result = append(result, &User{ID: row.ID, Name: row.Name})
	}
	return result, nil
}

func selectUsers() *goqu.SelectDataset {
	return database.Builder.From(schema.Users.Ident()).Prepared(true).Select(schema.Users.Columns()...)
}
