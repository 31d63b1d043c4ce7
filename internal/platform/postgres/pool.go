// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres owns the pgx connection pool and exposes it to the
// repositories as a database/sql handle through the pgx stdlib bridge, so
// scoped connections and transactions are all borrowed from one pool.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/taibuivan/library/internal/platform/constants"
	"github.com/taibuivan/library/internal/platform/database/schema"
)

const (
	maxConns          = 20
	minConns          = 2
	maxConnLifetime   = time.Hour
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

// DriverName is the database/sql driver name registered by pgx/v5/stdlib.
const DriverName = "pgx"

// Config parses dsn and applies the pool limits and per-session settings.
//
// Every session gets application_name for pg_stat_activity, a statement
// timeout equal to the request deadline, and the library schema first on
// its search_path. Values already present in dsn win.
func Config(dsn string) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	params := poolConfig.ConnConfig.RuntimeParams
	setDefault(params, "application_name", constants.AppName)
	setDefault(params, "statement_timeout", strconv.FormatInt(constants.GlobalRequestTimeout.Milliseconds(), 10))
	setDefault(params, "search_path", schema.Name+",public")

	return poolConfig, nil
}

func setDefault(params map[string]string, key, value string) {
	if _, found := params[key]; !found {
		params[key] = value
	}
}

// NewPool creates the pool and verifies the database answers.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := Config(dsn)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres pool connected",
		slog.String("host", poolConfig.ConnConfig.Host),
		slog.String("database", poolConfig.ConnConfig.Database),
		slog.Int("max_conns", int(poolConfig.MaxConns)),
	)

	return pool, nil
}

// OpenDB exposes the pool as a [*sqlx.DB].
//
// Connections handed out by the returned handle are borrowed from the pool,
// so closing the handle does not close the pool. The pool must outlive it.
func OpenDB(pool *pgxpool.Pool) *sqlx.DB {
	return sqlx.NewDb(stdlib.OpenDBFromPool(pool), DriverName)
}

// Ping verifies that the pool can reach PostgreSQL.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}
