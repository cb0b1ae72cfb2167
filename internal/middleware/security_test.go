package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", rec.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "default-src 'self'", rec.Header().Get("Content-Security-Policy"))
	assert.Contains(t, rec.Header().Get("Strict-Transport-Security"), "max-age=")
}

func TestHostCheck(t *testing.T) {
	h := HostCheck("api.campuscalm.app")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	req.Host = "api.campuscalm.app"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Port is stripped before comparing
	req = httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	req.Host = "api.campuscalm.app:443"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	req.Host = "evil.example.com"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHostCheckDisabledWhenEmpty(t *testing.T) {
	h := HostCheck("")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	req.Host = "anything.example.com"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGlobalRateLimitReturns429AfterBurst(t *testing.T) {
	h := GlobalRateLimit(okHandler())

	// Burst of 10 passes, the next request in the same instant is rejected.
	var last *httptest.ResponseRecorder
	for i := 0; i < globalRateLimitBurst+1; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/journals", nil)
		req.RemoteAddr = "203.0.113.10:54321"
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
		if i < globalRateLimitBurst {
			require.Equal(t, http.StatusOK, last.Code, "request %d should pass", i)
		}
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Contains(t, last.Body.String(), "Too many requests")

	// A different IP has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/api/journals", nil)
	req.RemoteAddr = "203.0.113.11:54321"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRateLimitOnlyGuardsAuthPaths(t *testing.T) {
	h := LoginRateLimit(okHandler())

	// Exhaust the login bucket for one IP.
	var last *httptest.ResponseRecorder
	for i := 0; i < loginRateLimitBurst+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", nil)
		req.RemoteAddr = "203.0.113.20:40000"
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Contains(t, last.Body.String(), "Too many login attempts")

	// Non-auth paths from the same IP are unaffected.
	req := httptest.NewRequest(http.MethodGet, "/api/journals", nil)
	req.RemoteAddr = "203.0.113.20:40000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChatRateLimitGuardsSendPath(t *testing.T) {
	h := ChatRateLimit(okHandler())

	var last *httptest.ResponseRecorder
	for i := 0; i < chatSendBurst+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
		req.RemoteAddr = "203.0.113.30:40000"
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))

	// Other routes bypass the chat limiter entirely.
	req := httptest.NewRequest(http.MethodGet, "/api/exams", nil)
	req.RemoteAddr = "203.0.113.30:40000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
