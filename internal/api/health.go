// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/library/internal/platform/constants"
	"github.com/taibuivan/library/internal/platform/respond"
)

// Probe checks one dependency. It must honour ctx cancellation.
type Probe func(ctx context.Context) error

// HealthDependencies holds the dependency probes behind /ready. A nil probe
// is skipped, which is how the optional cache is left out.
type HealthDependencies struct {
	// Database pings the PostgreSQL pool.
	Database Probe

	// Cache pings the Redis client.
	Cache Probe
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready handlers.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health. It never touches a dependency.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus:  "ok",
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: constants.AppVersion,
	})
}

// readiness handles GET /ready. Any failing probe answers 503.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, 2)
	isSystemReady := true

	for _, dependency := range []struct {
		name  string
		probe Probe
	}{
		{name: "postgres", probe: handler.dependencies.Database},
		{name: "redis", probe: handler.dependencies.Cache},
	} {
		if dependency.probe == nil {
			continue
		}

		result := handler.check(request.Context(), dependency.name, dependency.probe)
		isSystemReady = isSystemReady && result.IsOK
		results = append(results, result)
	}

	responseStatus, httpStatus := "ready", http.StatusOK
	if !isSystemReady {
		responseStatus, httpStatus = "degraded", http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: responseStatus,
		constants.FieldChecks: results,
	}})
}

func (handler *healthHandler) check(ctx context.Context, name string, probe Probe) checkResult {
	probeCtx, cancel := context.WithTimeout(ctx, constants.ProbeTimeout)
	defer cancel()

	if err := probe(probeCtx); err != nil {
		handler.logger.Error("readiness_check_failed", slog.String("dependency", name), slog.Any("error", err))
		return checkResult{Name: name, Error: err.Error()}
	}

	return checkResult{Name: name, IsOK: true}
}
