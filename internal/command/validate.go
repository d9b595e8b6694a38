package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/bornholm/solite-docs/internal/check"
	"github.com/bornholm/solite-docs/internal/config"
	"github.com/bornholm/solite-docs/internal/setup"
	"github.com/bornholm/solite-docs/internal/watch"
	"github.com/bornholm/solite-docs/pkg/log"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	reportFormatText = "text"
	reportFormatJSON = "json"
)

func newValidateCommand(opts *rootOptions) *cobra.Command {
	var (
		siteFile      string
		watchMode     bool
		remote        bool
		failOnWarning bool
		format        string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every link of the site resolves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if format != reportFormatText && format != reportFormatJSON {
				return errors.Errorf("unknown report format '%s'", format)
			}

			opts.overrideSite(siteFile)

			if cmd.Flags().Changed("remote") {
				opts.conf.Check.Remote.Enabled = config.InterpolatedBool(remote)
			}

			if cmd.Flags().Changed("fail-on-warning") {
				opts.conf.Check.FailOnWarning = config.InterpolatedBool(failOnWarning)
			}

			out := cmd.OutOrStdout()

			validate := func(ctx context.Context) (*check.Report, error) {
				s, err := setup.NewSiteFromConfig(ctx, opts.conf)
				if err != nil {
					return nil, errors.WithStack(err)
				}

				checker, err := setup.NewCheckerFromConfig(ctx, opts.conf)
				if err != nil {
					return nil, errors.WithStack(err)
				}

				report, err := checker.Check(ctx, s)
				if err != nil {
					return nil, errors.WithStack(err)
				}

				if err := writeReport(out, format, report); err != nil {
					return nil, errors.WithStack(err)
				}

				return report, nil
			}

			report, err := validate(ctx)
			if err != nil && !watchMode {
				return errors.WithStack(err)
			}

			if err != nil {
				slog.ErrorContext(ctx, "could not validate site", log.Error(errors.WithStack(err)))
			}

			if !watchMode {
				if report.Failed() {
					return errors.WithStack(ErrValidationFailed)
				}
				return nil
			}

			src, err := setup.NewSourceFromConfig(ctx, opts.conf)
			if err != nil {
				return errors.WithStack(err)
			}

			paths := watchPaths(opts.conf, src)
			if len(paths) == 0 {
				return errors.New("nothing to watch: the source is not local and no site file is configured")
			}

			slog.InfoContext(ctx, "watching for changes", slog.Any("paths", paths))

			watcher := watch.NewWatcher(paths, func(ctx context.Context) error {
				invalidate(src)
				_, err := validate(ctx)
				return errors.WithStack(err)
			})

			return errors.WithStack(watcher.Watch(ctx))
		},
	}

	siteFlag(cmd, &siteFile)
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "validate again when the site file or the pages change")
	cmd.Flags().BoolVar(&remote, "remote", false, "check external URLs")
	cmd.Flags().BoolVar(&failOnWarning, "fail-on-warning", false, "fail when warnings are reported")
	cmd.Flags().StringVar(&format, "format", reportFormatText, "report format (text or json)")

	return cmd
}

func writeReport(w io.Writer, format string, report *check.Report) error {
	if format == reportFormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return errors.WithStack(encoder.Encode(report))
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, i := range report.Issues {
		check := i.Check
		if i.Rule != "" {
			check = i.Check + ":" + i.Rule
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", i.Severity, i.Location, check, i.Link, i.Message)
	}

	if err := tw.Flush(); err != nil {
		return errors.WithStack(err)
	}

	status := "ok"
	if report.Failed() {
		status = "failed"
	}

	_, err := fmt.Fprintf(w, "%s: %d link(s) checked, %d error(s), %d warning(s) in %s\n", status, report.Links, report.Errors(), report.Warnings(), report.Duration())

	return errors.WithStack(err)
}
