package command

import (
	"fmt"
	"text/tabwriter"

	"github.com/bornholm/solite-docs/internal/setup"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRunsCommand(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent validation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := setup.NewStoreFromConfig(ctx, opts.conf)
			if err != nil {
				return errors.WithStack(err)
			}

			defer st.Close()

			runs, err := st.ListRuns(ctx, limit)
			if err != nil {
				return errors.WithStack(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "ID\tSITE\tSTARTED\tDURATION\tLINKS\tERRORS\tWARNINGS")

			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n", r.ID, r.Site, humanize.Time(r.StartedAt), r.Duration(), r.Links, r.Errors, r.Warnings)
			}

			return errors.WithStack(w.Flush())
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs to list")

	return cmd
}
