package ratelimit

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
)

// Config holds the rate limiting knobs.
type Config struct {
	// Per-IP limit applied to every request
	PerIPCapacity   int
	PerIPRefillRate float64

	// Per-subject limit applied to authenticated requests
	PerUserCapacity   int
	PerUserRefillRate float64

	// Tighter limits for specific endpoints, keyed "METHOD /path"
	EndpointLimits map[string]EndpointLimit

	// How long idle buckets are kept
	BucketTTL time.Duration
}

// EndpointLimit overrides the per-IP limit for one endpoint.
type EndpointLimit struct {
	Capacity   int
	RefillRate float64
}

// DefaultConfig allows 100 requests per minute per IP and 200 per
// authenticated subject, with no endpoint overrides.
func DefaultConfig() *Config {
	return &Config{
		PerIPCapacity:     100,
		PerIPRefillRate:   100.0 / 60.0,
		PerUserCapacity:   200,
		PerUserRefillRate: 200.0 / 60.0,
		EndpointLimits:    make(map[string]EndpointLimit),
		BucketTTL:         time.Hour,
	}
}

// Middleware applies the configured limits to incoming requests.
type Middleware struct {
	config           *Config
	ipLimiter        *Limiter
	userLimiter      *Limiter
	endpointLimiters map[string]*Limiter
}

func NewMiddleware(config *Config) *Middleware {
	if config == nil {
		config = DefaultConfig()
	}
	m := &Middleware{
		config:           config,
		ipLimiter:        NewLimiter(config.PerIPCapacity, config.PerIPRefillRate, config.BucketTTL),
		userLimiter:      NewLimiter(config.PerUserCapacity, config.PerUserRefillRate, config.BucketTTL),
		endpointLimiters: make(map[string]*Limiter),
	}
	for endpoint, limit := range config.EndpointLimits {
		m.endpointLimiters[endpoint] = NewLimiter(limit.Capacity, limit.RefillRate, config.BucketTTL)
	}
	return m
}

// Handler is the chi middleware entry point.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if ip != "" && !m.ipLimiter.Allow(ip) {
			m.reject(w, r, "ip")
			return
		}

		if subject := tokenSubject(r); subject != "" && !m.userLimiter.Allow(subject) {
			m.reject(w, r, "user")
			return
		}

		endpointKey := r.Method + " " + r.URL.Path
		if limiter, ok := m.endpointLimiters[endpointKey]; ok {
			if !limiter.Allow(ip + ":" + endpointKey) {
				m.reject(w, r, "endpoint")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) reject(w http.ResponseWriter, r *http.Request, limitType string) {
	slog.Warn("Rate limit exceeded",
		"type", limitType,
		"ip", clientIP(r),
		"path", r.URL.Path,
		"method", r.Method,
	)
	w.Header().Set("Retry-After", "60")
	render.Status(r, http.StatusTooManyRequests)
	render.JSON(w, r, map[string]string{"message": "Too many requests. Please try again later."})
}

// clientIP prefers proxy headers over RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}

// tokenSubject pulls the subject out of a verified JWT, if the request
// carries one.
func tokenSubject(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || claims == nil {
		return ""
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}
