package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/solite-docs/internal/config"
	"github.com/bornholm/solite-docs/pkg/site"
	"github.com/pkg/errors"
)

// NewSiteFromConfig loads the site definition file, or returns the built-in site
// when none is configured. It is read again on each call.
func NewSiteFromConfig(ctx context.Context, conf *config.Config) (*site.Site, error) {
	path := string(conf.Site.File)
	if path == "" {
		slog.DebugContext(ctx, "using built-in site definition")
		return site.Default(), nil
	}

	s, err := site.LoadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load site file '%s'", path)
	}

	return s, nil
}
