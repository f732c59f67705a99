package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/evcsm/EVCS-BookingService/internal/api/handlers"
)

// RateLimiter throttles requests per principal. Unauthenticated requests are
// keyed by client IP instead. Limiters are kept in a sync.Map and created
// lazily; the map is bounded by the active user population.
type RateLimiter struct {
	limiters sync.Map // key -> *rate.Limiter
	rps      rate.Limit
	burst    int
	logger   Logger
}

// NewRateLimiter creates a per-principal rate limiter.
func NewRateLimiter(rps float64, burst int, logger Logger) *RateLimiter {
	return &RateLimiter{
		rps:    rate.Limit(rps),
		burst:  burst,
		logger: logger,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}
	limiter, _ := rl.limiters.LoadOrStore(key, rate.NewLimiter(rl.rps, rl.burst))
	return limiter.(*rate.Limiter)
}

// Middleware rejects requests above the limit with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)

		if !rl.limiterFor(key).Allow() {
			rl.logger.Warn("ratelimit: rejected %s %s for %s", r.Method, r.URL.Path, key)
			handlers.RespondError(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if principal, ok := PrincipalFromContext(r.Context()); ok {
		return principal.UserID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
