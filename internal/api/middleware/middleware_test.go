// SPDX-License-Identifier: MIT

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/folio/internal/api/problem"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRecoverer(t *testing.T) {
	h := RequestID(Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, problem.TypeInternal, body["type"])
	assert.NotEmpty(t, body["requestId"])
}

func TestRequestID(t *testing.T) {
	t.Run("propagates", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(problem.HeaderRequestID, "abc")
		rec := httptest.NewRecorder()
		RequestID(okHandler).ServeHTTP(rec, req)
		assert.Equal(t, "abc", rec.Header().Get(problem.HeaderRequestID))
	})

	t.Run("generates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequestID(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Len(t, rec.Header().Get(problem.HeaderRequestID), 36)
	})
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders("")(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, DefaultCSP, rec.Header().Get("Content-Security-Policy"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "https://cdnjs.cloudflare.com")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://allowed.example"})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/theme", nil)
	req.Header.Set("Origin", "https://allowed.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://allowed.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/theme", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCSRFProtection(t *testing.T) {
	h := CSRFProtection([]string{"https://allowed.example"})(okHandler)

	tests := []struct {
		name    string
		method  string
		headers map[string]string
		want    int
	}{
		{"safe method", http.MethodGet, nil, http.StatusOK},
		{"missing origin", http.MethodPost, nil, http.StatusForbidden},
		{"same origin", http.MethodPost, map[string]string{"Origin": "http://example.com"}, http.StatusOK},
		{"allowed origin", http.MethodPut, map[string]string{"Origin": "https://allowed.example"}, http.StatusOK},
		{"cross origin", http.MethodPost, map[string]string{"Origin": "https://evil.example"}, http.StatusForbidden},
		{"referer fallback", http.MethodPost, map[string]string{"Referer": "http://example.com/#about"}, http.StatusOK},
		{"bearer exempt", http.MethodPatch, map[string]string{"Authorization": "Bearer x"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://example.com/theme/toggle", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestBearerAuth(t *testing.T) {
	token := ""
	h := BearerAuth(func() string { return token })(okHandler)

	serve := func(auth string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/config/save", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := serve("Bearer anything")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, problem.TypeUnavailable, decodeProblem(t, rec)["type"])

	token = "s3cret"
	assert.Equal(t, http.StatusUnauthorized, serve("").Code)
	assert.Equal(t, http.StatusUnauthorized, serve("Bearer wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, serve("Basic s3cret").Code)
	assert.Equal(t, http.StatusOK, serve("Bearer s3cret").Code)
	assert.Equal(t, http.StatusOK, serve("bearer s3cret").Code)
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(RateLimitConfig{RequestLimit: 2, WindowSize: time.Minute})(okHandler)

	serve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/config/reload", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, serve().Code)
	assert.Equal(t, http.StatusOK, serve().Code)
	rec := serve()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, problem.TypeRateLimited, decodeProblem(t, rec)["type"])
}

func TestStack_MetricsUseRoutePattern(t *testing.T) {
	r := NewRouter(StackConfig{EnableSecurityHeaders: true, EnableMetrics: true, EnableLogging: true})
	r.Get("/api/theme", okHandler)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/theme", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(problem.HeaderRequestID))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestSpanName(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/config?key=personal.name", nil)
	assert.Equal(t, "GET /api/config?", spanName("", req))
	assert.False(t, shouldTrace(httptest.NewRequest(http.MethodGet, "/healthz", nil)))
	assert.True(t, shouldTrace(httptest.NewRequest(http.MethodGet, "/", nil)))

	traceID, spanID := TraceIDs(req)
	assert.Empty(t, traceID)
	assert.Empty(t, spanID)
}
