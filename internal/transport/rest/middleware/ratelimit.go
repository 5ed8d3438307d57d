package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimitMiddleware enforces a per-IP sliding-window request limit.
type RateLimitMiddleware struct {
	mu        sync.Mutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewRateLimitMiddleware creates a limiter allowing limit requests per window
// for each client IP.
func NewRateLimitMiddleware(limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Handler wraps the next handler with rate limiting.
func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !m.allow(ip) {
			w.Header().Set("Retry-After", strconv.Itoa(int(m.window.Seconds())))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limit exceeded"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cutoff := now.Add(-m.window)
	m.sweep(now, cutoff)

	recent := m.requests[ip][:0]
	for _, t := range m.requests[ip] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= m.limit {
		m.requests[ip] = recent
		return false
	}
	m.requests[ip] = append(recent, now)
	return true
}

// sweep drops IPs whose entries all fell out of the window, at most once per
// window. Keeps the map from growing with one key per client ever seen.
func (m *RateLimitMiddleware) sweep(now, cutoff time.Time) {
	if now.Sub(m.lastSweep) < m.window {
		return
	}
	m.lastSweep = now
	for ip, times := range m.requests {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(m.requests, ip)
		}
	}
}

// clientIP uses the first X-Forwarded-For hop, the client as seen by the edge
// proxy. Later entries are appended by intermediaries and the whole header is
// client-supplied, so anything past the first hop is not trusted either way.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
