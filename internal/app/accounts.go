package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	maxNameLength     = 120
	maxEmailLength    = 200
	minPasswordLength = 6
	maxPasswordLength = 200
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AccountService handles registration, login and user lookup.
type AccountService struct {
	users   domain.UserRepository
	hasher  domain.PasswordHasher
	clock   clockwork.Clock
	metrics AuthRecorder
}

func NewAccountService(users domain.UserRepository, hasher domain.PasswordHasher, clock clockwork.Clock, metrics AuthRecorder) *AccountService {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &AccountService{users: users, hasher: hasher, clock: clock, metrics: metrics}
}

// Register creates an account. Emails are stored lower-cased.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	user, err := s.register(ctx, in)
	s.metrics.AuthAttempt("register", err == nil)
	return user, err
}

func (s *AccountService) register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	switch {
	case name == "" || utf8.RuneCountInString(name) > maxNameLength:
		return nil, fmt.Errorf("%w: name must be 1 to %d characters", domain.ErrInvalidAccount, maxNameLength)
	case email == "" || utf8.RuneCountInString(email) > maxEmailLength || !strings.Contains(email, "@"):
		return nil, fmt.Errorf("%w: email is invalid", domain.ErrInvalidAccount)
	case utf8.RuneCountInString(in.Password) < minPasswordLength || utf8.RuneCountInString(in.Password) > maxPasswordLength:
		return nil, fmt.Errorf("%w: password must be %d to %d characters", domain.ErrInvalidAccount, minPasswordLength, maxPasswordLength)
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now().UTC().Truncate(time.Microsecond)
	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "User registered", "user_id", user.ID)
	return user, nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		s.metrics.AuthAttempt("login", false)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.metrics.AuthAttempt("login", false)
		slog.DebugContext(ctx, "Login rejected", "user_id", user.ID)
		return nil, domain.ErrInvalidCredentials
	}

	s.metrics.AuthAttempt("login", true)
	return user, nil
}

func (s *AccountService) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
