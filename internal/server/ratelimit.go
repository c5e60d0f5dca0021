package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"resumescore/internal/errors"
	"resumescore/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
)

// defaultEvictionAge applies when no rate limit window is configured
const defaultEvictionAge = 10 * time.Minute

// RateLimiter keeps one token bucket per client key (IP or API key).
// Buckets idle for longer than the eviction age are dropped.
type RateLimiter struct {
	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	lastSeen    map[string]time.Time
	rate        rate.Limit
	burst       int
	evictionAge time.Duration
	done        chan struct{}
	closeOnce   sync.Once
	logger      *errors.Logger
}

// NewRateLimiter creates a limiter allowing requestsPerMin per key with the
// given burst. window is how long an idle key's bucket is kept.
func NewRateLimiter(requestsPerMin int, window time.Duration, burstCapacity int, logger *errors.Logger) *RateLimiter {
	if window <= 0 {
		window = defaultEvictionAge
	}

	m := &RateLimiter{
		limiters:    make(map[string]*rate.Limiter),
		lastSeen:    make(map[string]time.Time),
		rate:        rate.Limit(float64(requestsPerMin) / 60.0),
		burst:       burstCapacity,
		evictionAge: window,
		done:        make(chan struct{}),
		logger:      logger,
	}

	go m.cleanupRoutine()
	return m
}

// GetLimiter retrieves or creates a limiter for a given key.
func (m *RateLimiter) GetLimiter(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, exists := m.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(m.rate, m.burst)
		m.limiters[key] = limiter
	}
	m.lastSeen[key] = time.Now()

	return limiter
}

// Allow reports whether a request for key may proceed. It never blocks.
func (m *RateLimiter) Allow(key string) bool {
	return m.GetLimiter(key).Allow()
}

// GetStats returns current rate limiter statistics
func (m *RateLimiter) GetStats() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	return map[string]any{
		"active_limiters": len(m.limiters),
		"rate_per_second": float64(m.rate),
		"rate_per_minute": float64(m.rate) * 60.0,
		"burst_capacity":  m.burst,
		"eviction_age":    m.evictionAge.String(),
	}
}

func (m *RateLimiter) cleanupRoutine() {
	ticker := time.NewTicker(m.evictionAge)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup(time.Now())
		case <-m.done:
			return
		}
	}
}

// cleanup removes limiters not used since now minus the eviction age
func (m *RateLimiter) cleanup(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, lastSeen := range m.lastSeen {
		if now.Sub(lastSeen) > m.evictionAge {
			delete(m.limiters, key)
			delete(m.lastSeen, key)
		}
	}

	if m.logger != nil {
		m.logger.Debug("Rate limiter cleanup completed",
			"remaining_limiters", len(m.limiters))
	}
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (m *RateLimiter) Close() {
	m.closeOnce.Do(func() { close(m.done) })
}

// createRateLimitMiddleware rejects requests over the per-key budget with 429
// and counts each rejection
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	if s.RateLimit == nil || !s.RateLimit.Enabled || s.RateLimiter == nil {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	var metrics *observability.Metrics
	if om != nil {
		metrics = om.Metrics()
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			rateLimitKey := getRateLimitKey(r, s.RateLimit.ByAPIKey, s.RateLimit.ByIP, s.APIKeys)
			if rateLimitKey == "" {
				next(w, r)
				return
			}

			if !s.RateLimiter.Allow(rateLimitKey) {
				keyType, _, _ := strings.Cut(rateLimitKey, ":")
				metrics.RecordRateLimitHit(r.Context(),
					attribute.String("endpoint", r.URL.Path),
					attribute.String("key_type", keyType),
				)
				s.Logger.Info("Rate limit exceeded",
					"key_type", keyType,
					"endpoint", r.URL.Path,
					"client_ip", getClientIP(r))
				w.Header().Set("Retry-After", "60")
				writeErrorResponse(w, "Rate limit exceeded", "Too many requests", http.StatusTooManyRequests)
				return
			}

			next(w, r)
		}
	}
}

// getRateLimitKey prefers the API key when byAPIKey is set and falls back to
// the client IP. Only keys present in validKeys get their own bucket, so
// rotating made-up keys cannot escape the per-IP budget.
func getRateLimitKey(r *http.Request, byAPIKey, byIP bool, validKeys map[string]bool) string {
	if byAPIKey {
		if apiKey := requestAPIKey(r); apiKey != "" && validKeys[apiKey] {
			return "api:" + apiKey
		}
	}

	if byIP {
		return "ip:" + getClientIP(r)
	}

	return ""
}

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (for proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// parseFirstIP parses the first valid IP from a comma-separated list
func parseFirstIP(ips string) string {
	for ip := range strings.SplitSeq(ips, ",") {
		ip = strings.TrimSpace(ip)
		if parsed := net.ParseIP(ip); parsed != nil {
			return ip
		}
	}
	return ""
}
