package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRepository maps opaque session tokens to the user that logged in.
// Resolve returns ErrSessionNotFound for unknown and expired tokens alike.
type SessionRepository interface {
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error)
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}
