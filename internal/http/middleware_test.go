package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nutrichat/internal/contextutil"
)

func TestLoggerMiddleware(t *testing.T) {
	var sawLogger bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contextutil.LoggerFromContext(r.Context()) != nil {
			sawLogger = true
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	LoggerMiddleware(inner).ServeHTTP(rec, req)

	if !sawLogger {
		t.Error("request context has no logger")
	}
}

func TestCORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("sets headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		CORS(inner).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Access-Control-Allow-Origin = %q", got)
		}
	})

	t.Run("handles preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/ask", nil)
		rec := httptest.NewRecorder()
		CORS(inner).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})
}
