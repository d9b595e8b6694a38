package setup

import (
	"io"
	"log/slog"
	"strings"

	"github.com/bornholm/solite-docs/internal/config"
	"github.com/bornholm/solite-docs/pkg/log"
)

func NewLoggerFromConfig(w io.Writer, conf *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     slog.Level(conf.Logger.Level),
		AddSource: slog.Level(conf.Logger.Level) <= slog.LevelDebug,
	}

	var handler slog.Handler

	switch strings.ToLower(string(conf.Logger.Format)) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(log.ContextHandler{
		Handler: handler,
	})
}
