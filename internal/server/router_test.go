package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/finbase/wallet-service/internal/boot"
	"github.com/finbase/wallet-service/internal/config"
	"github.com/finbase/wallet-service/internal/server"
)

func testConfig() config.Config {
	return config.Config{
		Host:           "localhost",
		Port:           3002,
		Environment:    config.EnvDevelopment,
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

func newHandler(t *testing.T, api http.Handler) http.Handler {
	t.Helper()
	if api == nil {
		api = chi.NewRouter()
	}
	return server.New(testConfig(), zaptest.NewLogger(t), &boot.Deps{}, api)
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func TestHealthEndpoint(t *testing.T) {
	rec := do(t, newHandler(t, nil), http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Status    string `json:"status"`
		Service   string `json:"service"`
		Version   string `json:"version"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "wallet-service", body.Service)
	assert.NotEmpty(t, body.Version)

	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err, "timestamp must be RFC3339")
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	rec := do(t, newHandler(t, nil), http.MethodGet, "/definitely/missing")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "ROUTE_NOT_FOUND", body.Code)
	assert.Contains(t, body.Message, "/definitely/missing")
}

func TestUnknownAPIRouteReturnsJSON404WithFullPath(t *testing.T) {
	rec := do(t, newHandler(t, nil), http.MethodGet, "/api/v1/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ROUTE_NOT_FOUND", body.Code)
	assert.Contains(t, body.Message, "/api/v1/nope")
}

func TestMethodNotAllowedEnvelope(t *testing.T) {
	rec := do(t, newHandler(t, nil), http.MethodDelete, "/health")

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var body errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "METHOD_NOT_ALLOWED", body.Code)
	assert.Contains(t, body.Message, "DELETE")
}

func TestSecurityHeaders(t *testing.T) {
	rec := do(t, newHandler(t, nil), http.MethodGet, "/health")

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
}

func TestCORSPreflightForAllowedOrigin(t *testing.T) {
	h := newHandler(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000",
		rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	h := newHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPanicInAPIHandlerReturnsJSON500(t *testing.T) {
	api := chi.NewRouter()
	api.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})
	h := newHandler(t, api)

	rec := do(t, h, http.MethodGet, "/api/v1/boom")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
}

func TestReadinessReportsDownDependencies(t *testing.T) {
	rec := do(t, newHandler(t, nil), http.MethodGet, "/health/ready")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body.Status)
	assert.Len(t, body.Checks, 3)
}
