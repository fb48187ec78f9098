// Package cmd provides the entrypoint for the gh-email-finder cli.
package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/isometry/gh-email-finder/internal/config"
	"github.com/isometry/gh-email-finder/internal/handler"
	"github.com/isometry/gh-email-finder/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logger *slog.Logger

type boundEnvVar[T argType] struct {
	Name, Description string
	Env, Short        *string
	// NoEnv disables any environment lookup for the flag.
	NoEnv  bool
	Hidden bool
}

// New returns the root command for the gh-email-finder.
func New() *cobra.Command {
	// Configuration loading & defaults
	configErr := errors.Join(
		config.LoadFromFile(os.Getenv(config.FileEnv)),
		config.SetDefaults(),
	)
	config.GitHub.Token = ""

	cmd := &cobra.Command{
		Use:           "gh-email-finder",
		Short:         "Find all email addresses associated with your GitHub contributions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if configErr != nil {
				return configErr
			}
			applyEnv()
			logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				AddSource: config.Global.Logging.CallerTrace,
				Level:     slog.LevelWarn - slog.Level(config.Global.Logging.Verbosity*4),
			}))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if config.GitHub.Token == "" {
				return &handler.NoCredentialsError{}
			}
			hdl, err := handler.NewHandler(
				handler.WithLogger(logger),
				handler.WithToken(config.GitHub.Token),
				handler.WithBaseURL(config.GitHub.APIURL),
				handler.WithUserAgent(config.GitHub.UserAgent),
				handler.WithPageSize(config.GitHub.PageSize),
				handler.WithOutput(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			_, err = hdl.Run(cmd.Context())
			return err
		},
	}

	// Dynamic flags
	setupDynamicFlags(cmd)

	return cmd
}

// ExitCode reports err on w the way the cli presents outcomes and returns the process exit status.
// An interrupt is a clean exit, distinct from both success and failure.
func ExitCode(ctx context.Context, w io.Writer, err error) int {
	reporter := report.NewReporter(w)
	var noCreds *handler.NoCredentialsError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &noCreds):
		reporter.MissingToken()
		return 1
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		reporter.Cancelled()
		return 0
	default:
		reporter.Error(err)
		return 1
	}
}

func setupDynamicFlags(cmd *cobra.Command) {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(replacer)

	bindEnvMap(cmd, envMapString)
	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapCount)
}

// applyEnv resolves every bound value through viper so environment variables apply
// to flags that were not set on the command line.
func applyEnv() {
	resolveEnvMap(envMapString, viper.GetString)
	resolveEnvMap(envMapBool, viper.GetBool)
	resolveEnvMap(envMapCount, viper.GetInt)
}
