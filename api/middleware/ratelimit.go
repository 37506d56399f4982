// ABOUTME: Per-client token buckets in front of the feed endpoints
// ABOUTME: Buckets live in go-cache so idle clients are forgotten

package middleware

import (
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client. Buckets of idle
// clients expire after two windows.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *cache.Cache
	limit    int
	window   time.Duration
}

// NewRateLimiter allows limit requests per window, with bursts up to limit
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: cache.New(2*window, window),
		limit:    limit,
		window:   window,
	}
}

// Allow takes a token from the bucket of key
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiterFor(key).Allow()
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.limiters.Get(key); ok {
		l := v.(*rate.Limiter)
		rl.limiters.SetDefault(key, l)
		return l
	}

	l := rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.limit)), rl.limit)
	rl.limiters.SetDefault(key, l)
	return l
}

// extractIP prefers the proxy headers, so the API must sit behind a proxy
// that overwrites them.
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

const rateLimitedBody = `{"title":"Too Many Requests","status":429,"detail":"Rate limit exceeded. Please try again later.","code":"ratelimited"}`

// RateLimitMiddleware rejects clients that ran out of tokens with 429.
// Requests for the exempt paths, such as health probes, are never counted.
func RateLimitMiddleware(limiter *RateLimiter, exempt ...string) func(http.Handler) http.Handler {
	limit := strconv.Itoa(limiter.limit)
	retryAfter := strconv.Itoa(max(1, int(limiter.window.Seconds())))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(exempt, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Window", limiter.window.String())

			if !limiter.Allow(extractIP(r)) {
				w.Header().Set("Content-Type", "application/problem+json")
				w.Header().Set("Retry-After", retryAfter)
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(rateLimitedBody))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
