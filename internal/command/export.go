package command

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/bornholm/solite-docs/internal/setup"
	"github.com/bornholm/solite-docs/pkg/site"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var (
		siteFile string
		format   string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the site configuration in the site builder's format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts.overrideSite(siteFile)

			s, err := setup.NewSiteFromConfig(ctx, opts.conf)
			if err != nil {
				return errors.WithStack(err)
			}

			var buff bytes.Buffer

			if err := site.Encode(&buff, site.Format(format), s); err != nil {
				return errors.WithStack(err)
			}

			if output == "" {
				_, err := buff.WriteTo(cmd.OutOrStdout())
				return errors.WithStack(err)
			}

			if err := os.WriteFile(output, buff.Bytes(), 0o644); err != nil {
				return errors.WithStack(err)
			}

			slog.InfoContext(ctx, "site exported", slog.String("file", output), slog.String("format", format))

			return nil
		},
	}

	siteFlag(cmd, &siteFile)
	cmd.Flags().StringVar(&format, "format", string(site.FormatJSON), "output format (json, yaml or vitepress)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, defaults to stdout")

	return cmd
}
