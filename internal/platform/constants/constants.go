// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared by the server, the
// middleware chain and the terminal client.
package constants

import "time"

const (
	AppName    = "library-api"
	AppVersion = "0.1.0-dev"
)

// # Lifecycle

const (
	// StartupTimeout bounds connecting to PostgreSQL and Redis at boot.
	StartupTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests may run after SIGTERM.
	ShutdownTimeout = 30 * time.Second

	// FlushTimeout bounds exporting buffered spans on exit.
	FlushTimeout = 5 * time.Second

	// ProbeTimeout bounds each dependency check of the readiness probe.
	ProbeTimeout = 2 * time.Second
)

// # HTTP Server

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// GlobalRequestTimeout is the deadline of one request. PostgreSQL's
	// statement_timeout is set to the same value.
	GlobalRequestTimeout = 30 * time.Second
)

// # Rate Limiting (per client IP)

const (
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Fields

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// RedisPrefixUser namespaces cached users; the key is the prefix plus the ID.
const RedisPrefixUser = "library:users:"
