// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"

	"github.com/taibuivan/library/internal/platform/apperr"
	"github.com/taibuivan/library/internal/platform/ctxutil"
)

// # Protocol Errors

var (
	// ErrTransactionActive is returned by BeginTransaction while a transaction is open.
	ErrTransactionActive = apperr.InvalidState("Transaction already started")

	// ErrNoTransaction is returned by Commit and Rollback when nothing is open.
	ErrNoTransaction = apperr.InvalidState("No transaction is open")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = apperr.InvalidState("Unit of work is closed")
)

// Transactor is the explicit transaction boundary of a unit of work.
type Transactor interface {
	BeginTransaction(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// # Unit of Work

// UnitOfWork groups one dedicated connection and an optional open transaction.
//
// States: NoTransaction (initial) -> InTransaction (BeginTransaction) ->
// NoTransaction (Commit or Rollback). Close releases the connection and rolls
// back a transaction that is still open; it never commits.
//
// # Concurrency
//
// A UnitOfWork is not safe for concurrent use. One request owns it.
type UnitOfWork struct {
	connection *sqlx.Conn
	tx         *sqlx.Tx
	closed     bool
	logger     *slog.Logger
}

// Open checks out a dedicated connection and returns a [UnitOfWork] in the
// NoTransaction state.
func Open(ctx context.Context, provider ConnectionProvider) (*UnitOfWork, error) {
	connection, err := provider.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("database: open unit of work: %w", err)
	}

	return &UnitOfWork{
		connection: connection,
		logger:     ctxutil.GetLogger(ctx),
	}, nil
}

// InTransaction reports whether a transaction is currently open.
func (uow *UnitOfWork) InTransaction() bool {
	return uow.tx != nil
}

/*
BeginTransaction opens a transaction on the owned connection.

Returns:
  - error: ErrTransactionActive if one is already open, ErrClosed after Close,
    or the driver failure
*/
func (uow *UnitOfWork) BeginTransaction(ctx context.Context) error {
	if uow.closed {
		return ErrClosed
	}
	if uow.tx != nil {
		return ErrTransactionActive
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "uow.begin")
	defer span.End()

	tx, err := uow.connection.BeginTxx(ctx, nil)
	if err != nil {
		recordError(span, err)
		return fmt.Errorf("database: begin transaction: %w", err)
	}

	uow.tx = tx
	return nil
}

/*
Commit durably applies every statement issued since BeginTransaction.

Description: The unit of work returns to NoTransaction even when the driver
reports a failure, since the transaction cannot be reused afterwards.
*/
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if uow.closed {
		return ErrClosed
	}
	if uow.tx == nil {
		return ErrNoTransaction
	}

	_, span := otel.Tracer(tracerName).Start(ctx, "uow.commit")
	defer span.End()

	tx := uow.tx
	uow.tx = nil

	if err := tx.Commit(); err != nil {
		recordError(span, err)
		return fmt.Errorf("database: commit: %w", err)
	}

	return nil
}

/*
Rollback discards every statement issued since BeginTransaction.

Description: A transaction that the driver already aborted (for example
because ctx was cancelled) counts as rolled back.
*/
func (uow *UnitOfWork) Rollback(ctx context.Context) error {
	if uow.closed {
		return ErrClosed
	}
	if uow.tx == nil {
		return ErrNoTransaction
	}

	_, span := otel.Tracer(tracerName).Start(ctx, "uow.rollback")
	defer span.End()

	tx := uow.tx
	uow.tx = nil

	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		recordError(span, err)
		return fmt.Errorf("database: rollback: %w", err)
	}

	return nil
}

// Close rolls back an abandoned transaction and releases the connection.
// Calling Close more than once is a no-op.
func (uow *UnitOfWork) Close() error {
	if uow.closed {
		return nil
	}
	uow.closed = true

	var errs []error
	if uow.tx != nil {
		uow.logger.Warn("unit_of_work_abandoned_transaction")
		if err := uow.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			errs = append(errs, fmt.Errorf("database: rollback on close: %w", err))
		}
		uow.tx = nil
	}

	if err := uow.connection.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		errs = append(errs, fmt.Errorf("database: release connection: %w", err))
	}

	return errors.Join(errs...)
}

// Acquire implements [Scope]. Statements run inside the open transaction if
// there is one, otherwise directly on the owned connection. Release is a no-op
// because the unit of work keeps the connection until Close.
func (uow *UnitOfWork) Acquire(ctx context.Context) (Executor, Release, error) {
	if uow.closed {
		return nil, nil, ErrClosed
	}
	if uow.tx != nil {
		return uow.tx, func() {}, nil
	}
	return uow.connection, func() {}, nil
}

// # Transaction Helper

/*
Run executes fn inside a transaction on t.

Description: Begins a transaction, runs fn, and commits when fn succeeds.
When fn fails or panics the transaction is rolled back and the original error
(or panic) is propagated.
*/
func Run(ctx context.Context, t Transactor, fn func(ctx context.Context) error) error {
	if err := t.BeginTransaction(ctx); err != nil {
		return err
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			_ = t.Rollback(ctx)
			panic(recovered)
		}
	}()

	if err := fn(ctx); err != nil {
		if rollbackErr := t.Rollback(ctx); rollbackErr != nil {
			return errors.Join(err, rollbackErr)
		}
		return err
	}

	return t.Commit(ctx)
}
