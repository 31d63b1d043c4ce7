// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package database defines the data-access contract shared by every repository.

Repositories never hold a connection themselves. They ask a [Scope] for an
[Executor] at the start of each operation and release it when the operation
returns. Two scopes exist:

  - [Standalone]: checks out a dedicated connection from the provider for a
    single operation and returns it on every exit path.
  - [UnitOfWork]: owns one connection for its whole lifetime and, while a
    transaction is open, hands out the transaction instead.

This lets the same repository implementation run ad hoc or as part of a
multi-repository transaction without knowing which.
*/
package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	// postgres dialect registers "$n" placeholders and identifier quoting.
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies spans emitted by the data-access layer.
const tracerName = "github.com/taibuivan/library/internal/platform/database"

// # Contracts

// Executor is the statement surface shared by [*sqlx.Conn] and [*sqlx.Tx].
type Executor interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// Release returns an acquired [Executor] to its owner. It is safe to call once.
type Release func()

// Scope hands out the [Executor] a repository runs one operation on.
type Scope interface {
	Acquire(ctx context.Context) (Executor, Release, error)
}

// ConnectionProvider opens dedicated connections. [*sqlx.DB] satisfies it.
type ConnectionProvider interface {
	Connx(ctx context.Context) (*sqlx.Conn, error)
}

// # Standalone Scope

// Standalone is a [Scope] that checks out a fresh connection for every operation.
type Standalone struct {
	provider ConnectionProvider
}

// NewStandalone constructs a [Standalone] scope over the provider.
func NewStandalone(provider ConnectionProvider) *Standalone {
	return &Standalone{provider: provider}
}

// Acquire implements [Scope]. The returned [Release] closes the connection,
// which hands it back to the pool.
func (scope *Standalone) Acquire(ctx context.Context) (Executor, Release, error) {
	connection, err := scope.provider.Connx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("database: acquire connection: %w", err)
	}

	return connection, func() { _ = connection.Close() }, nil
}

// # Operation Helper

/*
Do runs fn against an executor acquired from scope.

Description: The executor is released on every exit path, including a panic
inside fn. The operation is wrapped in a client span named after op so that
slow statements show up in traces.

Parameters:
  - ctx: context.Context (cancellation aborts the statement in flight)
  - scope: Scope
  - op: string (span name, e.g. "users.get_by_id")
  - fn: func(ctx, Executor) error

Returns:
  - error: Acquisition failure or whatever fn returned, unwrapped
*/
func Do(ctx context.Context, scope Scope, op string, fn func(ctx context.Context, db Executor) error) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	defer span.End()

	executor, release, err := scope.Acquire(ctx)
	if err != nil {
		recordError(span, err)
		return err
	}
	defer release()

	if err := fn(ctx, executor); err != nil {
		recordError(span, err)
		return err
	}

	return nil
}

// recordError marks the span as failed.
func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// # Query Builder

// Builder renders goqu datasets with the PostgreSQL dialect.
//
// Datasets built from it must be marked Prepared(true) so that values travel
// as bind parameters rather than being interpolated.
var Builder = goqu.Dialect("postgres")
