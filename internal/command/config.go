package command

import (
	"github.com/bornholm/solite-docs/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the tool configuration",
		// Dumping shows the raw defaults, environment references included
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Dump the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Dump(cmd.OutOrStdout(), config.NewDefaultConfig()); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	})

	return cmd
}
