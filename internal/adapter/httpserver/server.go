package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/Bhanuvikas1/job-tracker/internal/adapter/metrics"
	"github.com/Bhanuvikas1/job-tracker/internal/app"
	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	"github.com/Bhanuvikas1/job-tracker/internal/platform/config"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

type applicationService interface {
	Create(ctx context.Context, ownerID uuid.UUID, draft domain.ApplicationDraft) (*domain.JobApplication, error)
	UpdateStatus(ctx context.Context, ownerID, applicationID uuid.UUID, status domain.Status) (*domain.JobApplication, error)
	Delete(ctx context.Context, ownerID, applicationID uuid.UUID) error
	GetOwned(ctx context.Context, ownerID, applicationID uuid.UUID) (*domain.JobApplication, error)
	ListHistory(ctx context.Context, ownerID, applicationID uuid.UUID) ([]domain.StatusHistoryEntry, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.JobApplication, error)
	Summary(ctx context.Context, ownerID uuid.UUID) (domain.StatusSummary, error)
}

type accountService interface {
	Register(ctx context.Context, in app.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	apps     applicationService
	accounts accountService
	sessions domain.SessionRepository

	sessionStore   *sessions.CookieStore
	httpMetrics    *metrics.HTTPMetrics
	metricsHandler http.Handler
	healthChecks   []HealthCheck
	startTime      time.Time
}

// NewServer wires the routes. httpMetrics and metricsHandler may be nil.
func NewServer(cfg *config.Config, apps applicationService, accounts accountService, sessionRepo domain.SessionRepository, httpMetrics *metrics.HTTPMetrics, metricsHandler http.Handler, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	srv := &Server{
		echo:           e,
		config:         cfg,
		apps:           apps,
		accounts:       accounts,
		sessions:       sessionRepo,
		sessionStore:   setupSessionStore(cfg),
		httpMetrics:    httpMetrics,
		metricsHandler: metricsHandler,
		healthChecks:   healthChecks,
		startTime:      time.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP lets the server be driven directly, e.g. by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

const (
	sessionName     = "jobtracker-session"
	sessionKeyToken = "token"
)

// setupSessionStore returns the cookie store for the session token. The cookie
// only carries an opaque token; the user it belongs to lives in Redis.
func setupSessionStore(cfg *config.Config) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

type requestValidator struct {
	v *validator.Validate
}

// newRequestValidator reports field errors under their JSON names.
func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(i any) error {
	return rv.v.Struct(i)
}
