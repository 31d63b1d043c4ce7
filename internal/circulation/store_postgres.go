// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package circulation

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/taibuivan/library/internal/catalog"
	"github.com/taibuivan/library/internal/platform/apperr"
	"github.com/taibuivan/library/internal/platform/database"
	"github.com/taibuivan/library/internal/platform/database/schema"
	"github.com/taibuivan/library/internal/platform/dberr"
	"github.com/taibuivan/library/internal/users"
)

type loanRow struct {
	ID         int        `db:"loanid"`
	CopyID     string     `db:"copyid"`
	UserID     int        `db:"userid"`
	LoanedAt   time.Time  `db:"loanedat"`
	ReturnedAt *time.Time `db:"returnedat"`
}

// PostgresLoanRepository stores loans in library.loans.
type PostgresLoanRepository struct {
	scope database.Scope
}

func NewPostgresLoanRepository(scope database.Scope) *PostgresLoanRepository {
	return &PostgresLoanRepository{scope: scope}
}

func (repository *PostgresLoanRepository) Open(ctx context.Context, loan *Loan) (int, error) {
	query, args, err := database.Builder.
		Insert(schema.Loans.Ident()).
		Prepared(true).
		Rows(goqu.Record{
			schema.Loans.CopyID:   loan.CopyID,
			schema.Loans.UserID:   loan.UserID,
			schema.Loans.LoanedAt: loan.LoanedAt,
		}).
		Returning(schema.Loans.ID).
		ToSQL()
	if err != nil {
		return 0, apperr.Internal(err)
	}

	var id int
	err = database.Do(ctx, repository.scope, "loans.open", func(ctx context.Context, db database.Executor) error {
		return sqlx.GetContext(ctx, db, &id, query, args...)
	})
	if err != nil {
		return 0, dberr.Wrap(err, "open_loan")
	}

	loan.ID = id
	return id, nil
}

func (repository *PostgresLoanRepository) CloseActive(ctx context.Context, copyID string, returnedAt time.Time) (bool, error) {
	query, args, err := database.Builder.
		Update(schema.Loans.Ident()).
		Prepared(true).
		Set(goqu.Record{schema.Loans.ReturnedAt: returnedAt}).
		Where(
			goqu.C(schema.Loans.CopyID).Eq(copyID),
			goqu.C(schema.Loans.ReturnedAt).IsNull(),
		).
		ToSQL()
	if err != nil {
		return false, apperr.Internal(err)
	}

	var affected int64
	err = database.Do(ctx, repository.scope, "loans.close_active", func(ctx context.Context, db database.Executor) error {
		result, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return false, dberr.Wrap(err, "close_loan")
	}

	return affected > 0, nil
}

func (repository *PostgresLoanRepository) ListActiveByUser(ctx context.Context, userID int) ([]*Loan, error) {
	query, args, err := database.Builder.
		From(schema.Loans.Ident()).
		Prepared(true).
		Select(schema.Loans.Columns()...).
		Where(
			goqu.C(schema.Loans.UserID).Eq(userID),
			goqu.C(schema.Loans.ReturnedAt).IsNull(),
		).
		Order(goqu.C(schema.Loans.LoanedAt).Asc()).
		ToSQL()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var rows []loanRow
	err = database.Do(ctx, repository.scope, "loans.list_active_by_user", func(ctx context.Context, db database.Executor) error {
		return sqlx.SelectContext(ctx, db, &rows, query, args...)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "list_loans")
	}

	loans := make([]*Loan, 0, len(rows))
	for _, row := range rows {
		loans = append(loans, &Loan{
			ID:         row.ID,
			CopyID:     row.CopyID,
			UserID:     row.UserID,
			LoanedAt:   row.LoanedAt,
			ReturnedAt: row.ReturnedAt,
		})
	}
	return loans, nil
}

// # Unit of Work

type postgresUnitOfWork struct {
	*database.UnitOfWork
	users  *users.PostgresRepository
	copies *catalog.PostgresCopyRepository
	loans  *PostgresLoanRepository
}

func (uow *postgresUnitOfWork) Users() users.Repository        { return uow.users }
func (uow *postgresUnitOfWork) Copies() catalog.CopyRepository { return uow.copies }
func (uow *postgresUnitOfWork) Loans() LoanRepository          { return uow.loans }

// NewPostgresUnitOfWorkFactory returns a factory whose units of work share one
// dedicated connection across users, copies and loans.
func NewPostgresUnitOfWorkFactory(provider database.ConnectionProvider) UnitOfWorkFactory {
	return func(ctx context.Context) (UnitOfWork, error) {
		uow, err := database.Open(ctx, provider)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		return &postgresUnitOfWork{
			UnitOfWork: uow,
			users:      users.NewPostgresRepository(uow),
			copies:     catalog.NewPostgresCopyRepository(uow),
			loans:      NewPostgresLoanRepository(uow),
		}, nil
	}
}
