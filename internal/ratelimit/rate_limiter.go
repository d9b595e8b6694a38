package ratelimit

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/bornholm/solite-docs/internal/syncx"
	"github.com/bornholm/solite-docs/pkg/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// RateLimiter holds one token bucket per key (a remote host, a client address).
type RateLimiter struct {
	rate     rate.Limit
	burst    int
	limiters syncx.Map[string, *rate.Limiter]
}

type GetKeyFunc func(r *http.Request) (string, error)

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	if limiter, exists := l.limiters.Load(key); exists {
		return limiter
	}

	limiter, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rate, l.burst))

	return limiter
}

func (l *RateLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

// Wait blocks until a token for key is available or ctx is done.
func (l *RateLimiter) Wait(ctx context.Context, key string) error {
	if err := l.limiter(key).Wait(ctx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (l *RateLimiter) Middleware(getKey GetKeyFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key, err := getKey(r)
			if err != nil {
				slog.ErrorContext(ctx, "could not retrieve rate limit key", log.Error(errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if !l.Allow(key) {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RemoteAddrKey keys requests by client IP.
func RemoteAddrKey(r *http.Request) (string, error) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr, nil
	}

	return host, nil
}

func New(rate rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  rate,
		burst: burst,
	}
}
