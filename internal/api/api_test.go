package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/library/internal/api"
	"github.com/taibuivan/library/internal/catalog"
	"github.com/taibuivan/library/internal/circulation"
	"github.com/taibuivan/library/internal/platform/config"
	"github.com/taibuivan/library/internal/platform/database"
	"github.com/taibuivan/library/internal/platform/middleware"
	"github.com/taibuivan/library/internal/users"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type envelope struct {
	Data struct {
		Status string `json:"status"`
		Checks []struct {
			Name string `json:"name"`
			OK   bool   `json:"ok"`
		} `json:"checks"`
	} `json:"data"`
}

func serve(t *testing.T, handler http.Handler, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))

	var body envelope
	_ = json.Unmarshal(recorder.Body.Bytes(), &body)
	return recorder, body
}

func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("connection refused") }

	t.Run("ready", func(t *testing.T) {
		_, readiness := api.NewHealthHandlers(api.HealthDependencies{Database: healthy, Cache: healthy}, discardLogger())

		recorder, body := serve(t, readiness, http.MethodGet, "/ready")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "ready", body.Data.Status)
		assert.Len(t, body.Data.Checks, 2)
	})

	t.Run("cache_disabled", func(t *testing.T) {
		_, readiness := api.NewHealthHandlers(api.HealthDependencies{Database: healthy}, discardLogger())

		_, body := serve(t, readiness, http.MethodGet, "/ready")
		require.Len(t, body.Data.Checks, 1)
		assert.Equal(t, "postgres", body.Data.Checks[0].Name)
	})

	t.Run("degraded", func(t *testing.T) {
		_, readiness := api.NewHealthHandlers(api.HealthDependencies{Database: broken, Cache: healthy}, discardLogger())

		recorder, body := serve(t, readiness, http.MethodGet, "/ready")
		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Equal(t, "degraded", body.Data.Status)
		assert.False(t, body.Data.Checks[0].OK)
		assert.True(t, body.Data.Checks[1].OK)
	})

	t.Run("probe_deadline", func(t *testing.T) {
		var hasDeadline bool
		probe := func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		}
		_, readiness := api.NewHealthHandlers(api.HealthDependencies{Database: probe}, discardLogger())

		serve(t, readiness, http.MethodGet, "/ready")
		assert.True(t, hasDeadline)
	})
}

// newServer wires the real handlers over a sqlmock database.
func newServer(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	db := sqlx.NewDb(raw, "sqlmock")

	logger := discardLogger()
	scope := database.NewStandalone(db)
	userRepository := users.NewPostgresRepository(scope)

	catalogService := catalog.NewService(
		catalog.NewPostgresBookRepository(scope),
		catalog.NewPostgresCopyRepository(scope),
		catalog.NewPostgresUnitOfWorkFactory(db),
		logger,
	)
	circulationService := circulation.NewService(
		userRepository,
		circulation.NewPostgresLoanRepository(scope),
		circulation.NewPostgresUnitOfWorkFactory(db),
		logger,
	)
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Database: func(context.Context) error { return nil },
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "test", RateLimitRPS: 100, RateLimitBurst: 100}, logger, api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Users:       users.NewHandler(users.NewService(userRepository, logger)),
		Catalog:     catalog.NewHandler(catalogService),
		Circulation: circulation.NewHandler(circulationService),
		Metrics:     middleware.NewMetrics(),
	})

	return server.Handler(), mock
}

func TestServer_Routes(t *testing.T) {
	handler, mock := newServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "library"."users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"userid", "name"}).AddRow(1, "Ada Lovelace"))

	recorder, _ := serve(t, handler, http.MethodGet, "/api/users")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Ada Lovelace")
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	for _, target := range []string{"/api/users/abc", "/api/users/abc/loans", "/api/books/abc", "/api/books/abc/copies"} {
		recorder, _ = serve(t, handler, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, target)
	}

	recorder, _ = serve(t, handler, http.MethodGet, "/api/users/search?name=%20")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder, _ = serve(t, handler, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = serve(t, handler, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `route="/api/users/{id}",status="400"`)

	recorder, _ = serve(t, handler, http.MethodGet, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}
