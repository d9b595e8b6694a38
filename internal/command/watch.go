package command

import (
	"github.com/bornholm/solite-docs/internal/config"
	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/bornholm/solite-docs/pkg/source/cached"
	"github.com/bornholm/solite-docs/pkg/source/local"
)

// watchPaths lists the local paths whose changes invalidate a validation.
func watchPaths(conf *config.Config, src source.Source) []string {
	paths := make([]string, 0, 2)

	if conf.Site.File != "" {
		paths = append(paths, string(conf.Site.File))
	}

	for src != nil {
		switch s := src.(type) {
		case *cached.Source:
			src = s.Backend()
		case *local.Source:
			paths = append(paths, s.Dir())
			src = nil
		default:
			src = nil
		}
	}

	return paths
}

// invalidate drops cached pages so that a reload sees fresh content.
func invalidate(src source.Source) {
	if s, ok := src.(*cached.Source); ok {
		s.Invalidate()
	}
}
