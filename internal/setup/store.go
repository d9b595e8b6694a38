package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/solite-docs/internal/config"
	"github.com/bornholm/solite-docs/internal/store"
	"github.com/pkg/errors"
)

var NewStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*store.Store, error) {
	store := store.NewStore(string(conf.Store.Path))

	if err := store.HealthCheck(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	purged, err := store.PurgeLinkResults(ctx, conf.Check.Remote.TTL.Duration())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if purged > 0 {
		slog.DebugContext(ctx, "purged expired link results", slog.Int("total", purged))
	}

	return store, nil
})
