package server

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// limiterCache keys token-bucket limiters by caller, with double-check
// locking on the slow path.
type limiterCache struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache(rps float64, burst int) *limiterCache {
	return &limiterCache{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (lc *limiterCache) get(key string) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()
	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	// Unbounded growth guard: one entry per client IP is cheap, but a
	// scan can churn addresses, so reset past a sane cap.
	if len(lc.limiters) > 10000 {
		lc.limiters = make(map[string]*rate.Limiter)
	}
	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// rateLimitByIP limits requests per client IP. Used on the AI routes,
// which fan out to a paid upstream.
func rateLimitByIP(rps float64, burst int) func(http.Handler) http.Handler {
	cache := newLimiterCache(rps, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			if !cache.get(host).Allow() {
				writeError(w, http.StatusTooManyRequests, codeRateLimited,
					"Too many AI requests; slow down", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
