package users_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/library/internal/users"
)

func newTestRouter() http.Handler {
	service := users.NewService(newMemoryRepository(), discardLogger())

	router := chi.NewRouter()
	router.Route("/api/users", users.NewHandler(service).RegisterRoutes)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_CreateAndFetch(t *testing.T) {
	router := newTestRouter()

	created := serve(router, http.MethodPost, "/api/users", `{"name":"Ada"}`)
	require.Equal(t, http.StatusCreated, created.Code)
	assert.Equal(t, "/api/users/1", created.Header().Get("Location"))
	assert.JSONEq(t, `{"data":{"user_id":1,"name":"Ada"}}`, created.Body.String())

	fetched := serve(router, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusOK, fetched.Code)
	assert.JSONEq(t, `{"data":{"user_id":1,"name":"Ada"}}`, fetched.Body.String())

	exists := serve(router, http.MethodGet, "/api/users/1/exists", "")
	assert.JSONEq(t, `{"data":true}`, exists.Body.String())

	var envelope struct {
		Data any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(exists.Body.Bytes(), &envelope))
	assert.IsType(t, true, envelope.Data)

	absent := serve(router, http.MethodGet, "/api/users/2/exists", "")
	assert.JSONEq(t, `{"data":false}`, absent.Body.String())

	search := serve(router, http.MethodGet, "/api/users/search?name=Ada", "")
	require.Equal(t, http.StatusOK, search.Code)
	assert.JSONEq(t, `{"data":[{"user_id":1,"name":"Ada"}]}`, search.Body.String())

	list := serve(router, http.MethodGet, "/api/users", "")
	assert.JSONEq(t, `{"data":[{"user_id":1,"name":"Ada"}]}`, list.Body.String())
}

func TestHandler_Errors(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"blank_name", http.MethodPost, "/api/users", `{"name":"  "}`, http.StatusBadRequest},
		{"malformed_body", http.MethodPost, "/api/users", `{"name":`, http.StatusBadRequest},
		{"missing_user", http.MethodGet, "/api/users/404", "", http.StatusNotFound},
		{"non_numeric_id", http.MethodGet, "/api/users/ada", "", http.StatusBadRequest},
		{"blank_search", http.MethodGet, "/api/users/search?name=", "", http.StatusBadRequest},
		{"missing_search", http.MethodGet, "/api/users/search", "", http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := serve(router, tc.method, tc.target, tc.body)
			assert.Equal(t, tc.status, recorder.Code)
		})
	}
}
