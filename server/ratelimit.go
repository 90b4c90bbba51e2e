package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter hands out one token bucket per client address. Buckets idle
// for longer than limiterIdleTTL are evicted on a later call.
type ipRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*ipLimiterEntry
	rate      rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

func newIPRateLimiter(perMinute int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*ipLimiterEntry),
		rate:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		now:      time.Now,
	}
}

func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > time.Minute {
		for key, entry := range rl.limiters {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(rl.limiters, key)
			}
		}
		rl.lastSweep = now
	}

	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &ipLimiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// RateLimitMiddleware answers 429 once a client address makes more than
// perMinute requests in a minute. A non-positive perMinute disables it.
func RateLimitMiddleware(perMinute int) mux.MiddlewareFunc {
	if perMinute <= 0 {
		return func(h http.Handler) http.Handler { return h }
	}

	rl := newIPRateLimiter(perMinute)
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientIP(r)) {
				w.Header().Set("Retry-After", "60")
				writeErrorResponse(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}

// clientIP is the host part of the remote address. Forwarded headers are
// only honored through handlers.ProxyHeaders.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
