package main

import (
	"fmt"
	"log/slog"

	"github.com/Bhanuvikas1/job-tracker/internal/adapter/postgres"
	"github.com/Bhanuvikas1/job-tracker/internal/adapter/redis"
	"github.com/spf13/cobra"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect and maintain login sessions",
	}
	cmd.AddCommand(newSessionsPruneCmd())
	return cmd
}

func newSessionsPruneCmd() *cobra.Command {
	var (
		databaseURL string
		redisURL    string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete sessions whose user no longer exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, err := envOr(databaseURL, "DATABASE_URL")
			if err != nil {
				return err
			}
			rURL, err := envOr(redisURL, "REDIS_URL")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := postgres.Connect(ctx, dbURL, nil)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()

			client, err := redis.NewClient(ctx, rURL, nil)
			if err != nil {
				return fmt.Errorf("failed to connect to Redis: %w", err)
			}
			defer func() { _ = client.Close() }()

			if dryRun {
				slog.InfoContext(ctx, "DRY RUN mode: no keys will be deleted")
			}

			found, err := redis.NewSessionRepo(client).PruneOrphans(ctx, postgres.NewUserRepo(pool), dryRun)
			if err != nil {
				return fmt.Errorf("prune failed after %d orphans: %w", found, err)
			}

			if dryRun {
				slog.InfoContext(ctx, "Dry run complete", "orphaned", found)
			} else {
				slog.InfoContext(ctx, "Prune complete", "deleted", found)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (default $DATABASE_URL)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis connection URL (default $REDIS_URL)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report orphaned sessions without deleting them")
	return cmd
}
