package main

import (
	"fmt"
	"log/slog"

	"github.com/Bhanuvikas1/job-tracker/internal/adapter/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Apply pending database migrations under an advisory lock.
Safe to run while servers are starting; they take the same lock.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := envOr(databaseURL, "DATABASE_URL")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := postgres.Connect(ctx, url, nil)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()

			if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			slog.InfoContext(ctx, "Migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (default $DATABASE_URL)")
	return cmd
}
