package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bhanuvikas1/job-tracker/internal/adapter/httpserver"
	"github.com/Bhanuvikas1/job-tracker/internal/adapter/metrics"
	"github.com/Bhanuvikas1/job-tracker/internal/adapter/postgres"
	"github.com/Bhanuvikas1/job-tracker/internal/adapter/redis"
	"github.com/Bhanuvikas1/job-tracker/internal/app"
	"github.com/Bhanuvikas1/job-tracker/internal/platform/config"
	"github.com/Bhanuvikas1/job-tracker/internal/platform/logging"
	"github.com/Bhanuvikas1/job-tracker/internal/platform/password"
	"github.com/Bhanuvikas1/job-tracker/internal/platform/retry"
	"github.com/Bhanuvikas1/job-tracker/internal/platform/version"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
)

const (
	connectTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

var startupRetry = retry.Policy{
	MaxAttempts:    6,
	InitialBackoff: time.Second,
	MaxBackoff:     10 * time.Second,
	OnRetry: func(attempt int, err error, backoff time.Duration) {
		slog.Warn("Dependency not ready, retrying", "attempt", attempt, "backoff", backoff, "error", err)
	},
}

func runGracefulShutdown(srv *httpserver.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// slog is not configured yet
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config, m *metrics.DBMetrics) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := retry.Do(ctx, startupRetry, retry.UnlessCanceled, func(ctx context.Context) (*pgxpool.Pool, error) {
		return postgres.Connect(ctx, cfg.DatabaseURL, postgres.NewMetricsTracer(m))
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(cfg *config.Config, m *metrics.RedisMetrics) *goredis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := retry.Do(ctx, startupRetry, retry.UnlessCanceled, func(ctx context.Context) (*goredis.Client, error) {
		return redis.NewClient(ctx, cfg.RedisURL, m)
	})
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func main() {
	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", version.Get().Version)

	reg := metrics.NewRegistry()
	appMetrics := metrics.NewApplicationMetrics(reg)

	pool := setupDB(cfg, metrics.NewDBMetrics(reg))
	defer pool.Close()

	redisClient := setupRedis(cfg, metrics.NewRedisMetrics(reg))
	defer func() { _ = redisClient.Close() }()

	clock := clockwork.NewRealClock()
	hasher := password.NewArgon2Hasher(password.Params{
		Memory:      cfg.Argon2MemoryKiB,
		Iterations:  cfg.Argon2Iterations,
		Parallelism: cfg.Argon2Parallelism,
		SaltLength:  password.DefaultParams().SaltLength,
		KeyLength:   password.DefaultParams().KeyLength,
	})

	applications := app.NewApplicationService(postgres.NewTxManager(pool), clock, appMetrics)
	accounts := app.NewAccountService(postgres.NewUserRepo(pool), hasher, clock, appMetrics)
	sessions := redis.NewSessionRepo(redisClient)

	healthChecks := []httpserver.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
	}

	srv := httpserver.NewServer(cfg, applications, accounts, sessions, metrics.NewHTTPMetrics(reg), metrics.Handler(reg), healthChecks)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
