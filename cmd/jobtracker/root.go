package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Bhanuvikas1/job-tracker/internal/platform/logging"
	"github.com/Bhanuvikas1/job-tracker/internal/platform/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "jobtracker",
		Short:         "Operator tasks for the job tracker service",
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				slog.Debug("No .env file found, using environment variables")
			}
			logging.InitLogger(opts.logLevel, opts.logFormat)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")

	cmd.AddCommand(newMigrateCmd(), newSessionsCmd(), newVersionCmd())
	return cmd
}

// envOr returns flagValue when set and falls back to the named environment variable.
func envOr(flagValue, name string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(name); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s is required (flag or environment)", name)
}
