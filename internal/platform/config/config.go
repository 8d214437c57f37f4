package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

const minSessionSecretLength = 32

type Config struct {
	AppEnv        string `env:"APP_ENV" default:"development"`
	Port          string `env:"PORT" default:"8080"`
	DatabaseURL   string `env:"DATABASE_URL"`
	RedisURL      string `env:"REDIS_URL"`
	SessionSecret string `env:"SESSION_SECRET"`
	LogLevel      string `env:"LOG_LEVEL" default:"info"`
	LogFormat     string `env:"LOG_FORMAT" default:"text"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`

	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT" default:"5"`
	AuthRateBurst int     `env:"AUTH_RATE_BURST" default:"10"`

	Argon2MemoryKiB   uint32 `env:"ARGON2_MEMORY_KIB" default:"65536"`
	Argon2Iterations  uint32 `env:"ARGON2_ITERATIONS" default:"3"`
	Argon2Parallelism uint8  `env:"ARGON2_PARALLELISM" default:"2"`

	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" default:"168h"` // 7 days
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas, dropping empty entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func validate(cfg *Config) error {
	required := []struct{ name, value string }{
		{"DATABASE_URL", cfg.DatabaseURL},
		{"REDIS_URL", cfg.RedisURL},
		{"SESSION_SECRET", cfg.SessionSecret},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	if len(cfg.SessionSecret) < minSessionSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters", minSessionSecretLength)
	}
	if cfg.IsProduction() {
		if mode := sslMode(cfg.DatabaseURL); mode == "disable" || mode == "allow" {
			return fmt.Errorf("DATABASE_URL uses sslmode=%s which is not allowed in production", mode)
		}
	}
	if cfg.SessionMaxAge <= 0 {
		return errors.New("SESSION_MAX_AGE must be positive")
	}
	if cfg.AuthRateLimit <= 0 || cfg.AuthRateBurst <= 0 {
		return errors.New("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive")
	}
	if cfg.Argon2Iterations == 0 || cfg.Argon2Parallelism == 0 || cfg.Argon2MemoryKiB < 8*uint32(cfg.Argon2Parallelism) {
		return errors.New("ARGON2_* parameters are out of range")
	}

	return nil
}

func sslMode(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Query().Get("sslmode"))
}
