package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(limit int, window time.Duration) (*RateLimitMiddleware, *time.Time) {
	m := NewRateLimitMiddleware(limit, window)
	now := time.Now()
	m.now = func() time.Time { return now }
	return m, &now
}

func doRequest(m *RateLimitMiddleware, remoteAddr, forwardedFor string) *httptest.ResponseRecorder {
	handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	r := httptest.NewRequest(http.MethodGet, "/v1/interviews", nil)
	r.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		r.Header.Set("X-Forwarded-For", forwardedFor)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	m, _ := newTestLimiter(2, time.Minute)

	assert.Equal(t, http.StatusOK, doRequest(m, "10.0.0.1:1234", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(m, "10.0.0.1:1234", "").Code)

	w := doRequest(m, "10.0.0.1:1234", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// A different client is unaffected.
	assert.Equal(t, http.StatusOK, doRequest(m, "10.0.0.2:1234", "").Code)
}

func TestRateLimitWindowSlides(t *testing.T) {
	m, now := newTestLimiter(1, time.Minute)

	assert.Equal(t, http.StatusOK, doRequest(m, "10.0.0.1:1234", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(m, "10.0.0.1:1234", "").Code)

	*now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, doRequest(m, "10.0.0.1:1234", "").Code)
}

func TestRateLimitSweepsIdleClients(t *testing.T) {
	m, now := newTestLimiter(5, time.Minute)

	doRequest(m, "10.0.0.1:1234", "")
	doRequest(m, "10.0.0.2:1234", "")
	require.Len(t, m.requests, 2)

	*now = now.Add(2 * time.Minute)
	doRequest(m, "10.0.0.3:1234", "")

	// The sweep dropped both idle entries; only the fresh client remains.
	assert.Len(t, m.requests, 1)
	assert.Contains(t, m.requests, "10.0.0.3")
}

func TestClientIPUsesFirstForwardedHop(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"

	assert.Equal(t, "10.0.0.1", clientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 70.41.3.18, 150.172.238.178")
	assert.Equal(t, "203.0.113.7", clientIP(r))

	r.Header.Set("X-Forwarded-For", " 203.0.113.7 ")
	assert.Equal(t, "203.0.113.7", clientIP(r))
}

func TestRateLimitKeyedByForwardedClient(t *testing.T) {
	m, _ := newTestLimiter(1, time.Minute)

	assert.Equal(t, http.StatusOK, doRequest(m, "10.0.0.1:1234", "203.0.113.7, 70.41.3.18").Code)

	// Same forwarded client through a different proxy shares the budget.
	assert.Equal(t, http.StatusTooManyRequests, doRequest(m, "10.0.0.9:9999", "203.0.113.7").Code)
}
