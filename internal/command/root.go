package command

import (
	"log/slog"

	"github.com/bornholm/solite-docs/internal/config"
	"github.com/bornholm/solite-docs/internal/setup"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrValidationFailed is returned when the site did not pass validation.
var ErrValidationFailed = errors.New("validation failed")

type rootOptions struct {
	configFile string
	conf       *config.Config
}

func (o *rootOptions) loadConfig(cmd *cobra.Command) error {
	conf := config.NewDefaultConfig()

	if o.configFile != "" {
		if err := config.LoadFile(o.configFile, conf); err != nil {
			return errors.Wrapf(err, "could not parse config file '%s'", o.configFile)
		}
	}

	if err := config.Interpolate(conf); err != nil {
		return errors.Wrap(err, "could not interpolate config file")
	}

	logger := setup.NewLoggerFromConfig(cmd.ErrOrStderr(), conf)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(slog.Level(conf.Logger.Level))

	o.conf = conf

	return nil
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "solite-docs",
		Short: "Manage the solite documentation site configuration",
		Long: `solite-docs validates the solite documentation site configuration against
its markdown sources, exports it for the site builder and serves a local preview.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "configuration file")

	cmd.AddCommand(
		newValidateCommand(opts),
		newExportCommand(opts),
		newServeCommand(opts),
		newScaffoldCommand(opts),
		newConfigCommand(),
		newRunsCommand(opts),
	)

	return cmd
}

// siteFlag binds the --site flag overriding the configured site file.
func siteFlag(cmd *cobra.Command, file *string) {
	cmd.Flags().StringVar(file, "site", "", "site definition file (.yml, .yaml or .json), defaults to the built-in site")
}

func (o *rootOptions) overrideSite(file string) {
	if file != "" {
		o.conf.Site.File = config.InterpolatedString(file)
	}
}
