// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the library HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Install the tracer provider (optional).
//  4. Connect to PostgreSQL (pgxpool) and run migrations.
//  5. Connect to Redis (optional; enables the user cache).
//  6. Wire services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/library/internal/api"
	"github.com/taibuivan/library/internal/catalog"
	"github.com/taibuivan/library/internal/circulation"
	"github.com/taibuivan/library/internal/platform/config"
	"github.com/taibuivan/library/internal/platform/constants"
	"github.com/taibuivan/library/internal/platform/database"
	"github.com/taibuivan/library/internal/platform/middleware"
	"github.com/taibuivan/library/internal/platform/migration"
	pgstore "github.com/taibuivan/library/internal/platform/postgres"
	redisstore "github.com/taibuivan/library/internal/platform/redis"
	"github.com/taibuivan/library/internal/platform/telemetry"
	"github.com/taibuivan/library/internal/users"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("cache_enabled", cfg.CacheEnabled()),
		slog.Bool("tracing_enabled", cfg.TracingEnabled()),
	)

	// Root context for the process lifetime; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.StartupTimeout)
	defer startupCancel()

	// ── 3. Tracing ────────────────────────────────────────────────────────
	shutdownTracing, err := telemetry.Setup(startupCtx, cfg.ServiceName, cfg.OTLPEndpoint)
	must(log, err, "set up tracing")
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), constants.FlushTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Error("tracing shutdown error", slog.Any("error", err))
		}
	}()

	// ── 4. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	db := pgstore.OpenDB(pool)
	scope := database.NewStandalone(db)

	// ── 5. Redis ──────────────────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.CacheEnabled() {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	var userRepository users.Repository = users.NewPostgresRepository(scope)
	if rdb != nil {
		userRepository = users.NewCachedRepository(userRepository, rdb, cfg.UserCacheTTL, log)
	}

	userService := users.NewService(userRepository, log)
	catalogService := catalog.NewService(
		catalog.NewPostgresBookRepository(scope),
		catalog.NewPostgresCopyRepository(scope),
		catalog.NewPostgresUnitOfWorkFactory(db),
		log,
	)
	circulationService := circulation.NewService(
		userRepository,
		circulation.NewPostgresLoanRepository(scope),
		circulation.NewPostgresUnitOfWorkFactory(db),
		log,
	)

	dependencies := api.HealthDependencies{
		Database: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}
	if rdb != nil {
		dependencies.Cache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}
	liveness, readiness := api.NewHealthHandlers(dependencies, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Users:       users.NewHandler(userService),
		Catalog:     catalog.NewHandler(catalogService),
		Circulation: circulation.NewHandler(circulationService),
		Metrics:     middleware.NewMetrics(),
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
	}

	if err := db.Close(); err != nil {
		log.Error("database handle close error", slog.Any("error", err))
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger and installs it as the slog default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
