package command

import (
	"fmt"

	"github.com/bornholm/solite-docs/internal/scaffold"
	"github.com/bornholm/solite-docs/internal/setup"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newScaffoldCommand(opts *rootOptions) *cobra.Command {
	var (
		siteFile string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Create stub pages for links that do not resolve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts.overrideSite(siteFile)

			s, err := setup.NewSiteFromConfig(ctx, opts.conf)
			if err != nil {
				return errors.WithStack(err)
			}

			src, err := setup.NewSourceFromConfig(ctx, opts.conf)
			if err != nil {
				return errors.WithStack(err)
			}

			stubs, err := scaffold.Plan(ctx, src, string(opts.conf.Site.BasePath), s)
			if err != nil {
				return errors.WithStack(err)
			}

			out := cmd.OutOrStdout()

			if dryRun {
				for _, stub := range stubs {
					fmt.Fprintf(out, "%s\t%s (%s)\n", stub.Name, stub.Title, stub.Location)
				}
				return nil
			}

			created, err := scaffold.Apply(ctx, src, stubs)
			for _, name := range created {
				fmt.Fprintln(out, name)
			}
			if err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}

	siteFlag(cmd, &siteFile)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the pages that would be created")

	return cmd
}
