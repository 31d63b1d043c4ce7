// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps environment variables onto [Config] with caarlos0/env.

Only DATABASE_URL is required. Redis and OTLP export are switched on by
setting their URLs; leaving them empty runs the service without a cache and
with a no-op tracer.

	cfg, err := config.Load()
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/library/internal/platform/validate"
)

// # Configuration Schema

// Config holds all runtime configuration for the library API server and CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"library-api"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Empty disables the user lookup cache.
	RedisURL     string        `env:"REDIS_URL"`
	UserCacheTTL time.Duration `env:"USER_CACHE_TTL" envDefault:"5m"`

	// Tracing export. Empty keeps the no-op tracer provider.
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"library.local"`

	// Per-client-IP request budget.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"150"`
}

// # Configuration Loading

// Load parses and checks the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	validator := &validate.Validator{}
	validator.
		OneOf("ENVIRONMENT", cfg.Environment, "development", "test", "staging", "production").
		Custom("USER_CACHE_TTL", cfg.UserCacheTTL <= 0, "Must be a positive duration").
		Custom("RATE_LIMIT_RPS", cfg.RateLimitRPS <= 0, "Must be a positive number").
		Positive("RATE_LIMIT_BURST", cfg.RateLimitBurst)

	if err := validator.Err(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// TracingEnabled reports whether spans should be exported.
func (c *Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}

// OriginAllowed reports whether a browser origin may call the API. Every
// origin is accepted in development.
func (c *Config) OriginAllowed(origin string) bool {
	return c.IsDevelopment() || strings.HasSuffix(origin, c.AllowedOriginSuffix)
}
