package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bornholm/solite-docs/internal/command"
	"github.com/bornholm/solite-docs/pkg/log"
	"github.com/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := command.NewRootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, command.ErrValidationFailed) {
			cancel()
			os.Exit(1)
		}

		slog.ErrorContext(ctx, "command failed", log.Error(err))
		cancel()
		os.Exit(1)
	}
}
