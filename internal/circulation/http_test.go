package circulation_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/library/internal/circulation"
)

func newTestRouter(f *fixture) http.Handler {
	handler := circulation.NewHandler(f.service)

	router := chi.NewRouter()
	router.Route("/api/copies", handler.RegisterRoutes)
	router.Route("/api/users", handler.RegisterUserRoutes)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_LendingCycle(t *testing.T) {
	f := newFixture(t)
	router := newTestRouter(f)

	checkout := serve(router, http.MethodPost, "/api/copies/"+f.copyID+"/checkout", `{"user_id":1}`)
	require.Equal(t, http.StatusCreated, checkout.Code)
	assert.Contains(t, checkout.Body.String(), `"copy_id":"`+f.copyID+`"`)

	again := serve(router, http.MethodPost, "/api/copies/"+f.copyID+"/checkout", `{"user_id":1}`)
	assert.Equal(t, http.StatusConflict, again.Code)
	assert.Contains(t, again.Body.String(), `"code":"INVALID_STATE"`)

	loans := serve(router, http.MethodGet, "/api/users/1/loans", "")
	require.Equal(t, http.StatusOK, loans.Code)
	assert.Contains(t, loans.Body.String(), f.copyID)

	returned := serve(router, http.MethodPost, "/api/copies/"+f.copyID+"/return", "")
	require.Equal(t, http.StatusOK, returned.Code)
	assert.Contains(t, returned.Body.String(), `"state":"available"`)

	twice := serve(router, http.MethodPost, "/api/copies/"+f.copyID+"/return", "")
	assert.Equal(t, http.StatusConflict, twice.Code)
}

func TestHandler_Errors(t *testing.T) {
	router := newTestRouter(newFixture(t))

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/api/copies/shelf-9/checkout", `{"user_id":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/api/copies/shelf-9/return", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/api/users/42/loans", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/api/users/x/loans", "").Code)
}
