package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/solite-docs/internal/config"
	"github.com/bornholm/solite-docs/internal/pprof"
	"github.com/bornholm/solite-docs/internal/preview"
	"github.com/bornholm/solite-docs/internal/ratelimit"
	"golang.org/x/time/rate"

	sloghttp "github.com/samber/slog-http"
)

// NewHandlerFromConfig wraps the preview handler with the server middlewares.
func NewHandlerFromConfig(ctx context.Context, conf *config.Config, previewHandler *preview.Handler) (http.Handler, error) {
	mux := &http.ServeMux{}

	slogMiddleware := sloghttp.New(slog.Default())

	rateLimiter := ratelimit.New(rate.Limit(conf.HTTP.RateLimit.Rate), int(conf.HTTP.RateLimit.Burst))
	rateLimiterMiddleware := rateLimiter.Middleware(ratelimit.RemoteAddrKey)

	if conf.HTTP.Pprof {
		mux.Handle("/debug/pprof/", pprof.NewHandler("/debug/pprof"))
	}

	mux.Handle("/", slogMiddleware(rateLimiterMiddleware(previewHandler)))

	return mux, nil
}
