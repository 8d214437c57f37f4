package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type StatusHistoryEntry struct {
	ID            int64
	ApplicationID uuid.UUID
	Status        Status
	ChangedAt     time.Time
}

// HistoryLedger is the append-only status trail of applications.
//
// Append never stores a ChangedAt earlier than the latest entry of the same application,
// so ListByApplication is ordered by both ChangedAt and insertion.
type HistoryLedger interface {
	Append(ctx context.Context, applicationID uuid.UUID, status Status, changedAt time.Time) (*StatusHistoryEntry, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]StatusHistoryEntry, error)
	DeleteAllForApplication(ctx context.Context, applicationID uuid.UUID) (int64, error)
}
