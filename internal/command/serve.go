package command

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/solite-docs/internal/config"
	"github.com/bornholm/solite-docs/internal/page"
	"github.com/bornholm/solite-docs/internal/preview"
	"github.com/bornholm/solite-docs/internal/setup"
	"github.com/bornholm/solite-docs/internal/watch"
	"github.com/bornholm/solite-docs/pkg/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var (
		siteFile string
		address  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview of the documentation site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conf := opts.conf

			opts.overrideSite(siteFile)

			if address != "" {
				conf.HTTP.Address = config.InterpolatedString(address)
			}

			src, err := setup.NewSourceFromConfig(ctx, conf)
			if err != nil {
				return errors.WithStack(err)
			}

			checker, err := setup.NewCheckerFromConfig(ctx, conf)
			if err != nil {
				return errors.WithStack(err)
			}

			basePath := string(conf.Site.BasePath)

			s, err := setup.NewSiteFromConfig(ctx, conf)
			if err != nil {
				return errors.WithStack(err)
			}

			report, err := checker.Check(ctx, s)
			if err != nil {
				return errors.WithStack(err)
			}

			previewHandler := preview.NewHandler(s, page.NewLoader(src, basePath), report)

			handler, err := setup.NewHandlerFromConfig(ctx, conf, previewHandler)
			if err != nil {
				return errors.WithStack(err)
			}

			server := &http.Server{
				Addr:    string(conf.HTTP.Address),
				Handler: handler,
			}

			reload := func(ctx context.Context) error {
				invalidate(src)

				s, err := setup.NewSiteFromConfig(ctx, conf)
				if err != nil {
					return errors.WithStack(err)
				}

				report, err := checker.Check(ctx, s)
				if err != nil {
					return errors.WithStack(err)
				}

				previewHandler.Swap(s, page.NewLoader(src, basePath), report)

				slog.InfoContext(ctx, "preview reloaded", slog.Int("errors", report.Errors()), slog.Int("warnings", report.Warnings()))

				return nil
			}

			group, ctx := errgroup.WithContext(ctx)

			group.Go(func() error {
				slog.InfoContext(ctx, "http server listening", slog.String("addr", server.Addr))

				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return errors.WithStack(err)
				}

				return nil
			})

			group.Go(func() error {
				<-ctx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.ErrorContext(shutdownCtx, "could not shutdown server", log.Error(errors.WithStack(err)))
				}

				return nil
			})

			if paths := watchPaths(conf, src); len(paths) > 0 {
				group.Go(func() error {
					slog.InfoContext(ctx, "watching for changes", slog.Any("paths", paths))
					return errors.WithStack(watch.NewWatcher(paths, reload).Watch(ctx))
				})
			}

			return errors.WithStack(group.Wait())
		},
	}

	siteFlag(cmd, &siteFile)
	cmd.Flags().StringVar(&address, "address", "", "listening address, defaults to the configured one")

	return cmd
}
