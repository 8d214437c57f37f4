package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// ApplicationService is the lifecycle coordinator for job applications. Every
// operation runs in one transaction; the owner is always passed in explicitly.
type ApplicationService struct {
	tx      domain.Transactor
	clock   clockwork.Clock
	metrics ApplicationRecorder
}

func NewApplicationService(tx domain.Transactor, clock clockwork.Clock, metrics ApplicationRecorder) *ApplicationService {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &ApplicationService{tx: tx, clock: clock, metrics: metrics}
}

// now is truncated to the storage precision so returned values match what is persisted.
func (s *ApplicationService) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Microsecond)
}

// Create stores a new application and its first history entry.
func (s *ApplicationService) Create(ctx context.Context, ownerID uuid.UUID, draft domain.ApplicationDraft) (*domain.JobApplication, error) {
	draft, err := draft.Normalize()
	if err != nil {
		return nil, err
	}

	var created domain.JobApplication
	err = s.tx.InTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		if _, err := tx.Users().GetByID(ctx, ownerID); err != nil {
			return err
		}

		now := s.now()
		created = domain.JobApplication{
			ID:        uuid.New(),
			OwnerID:   ownerID,
			Company:   draft.Company,
			Role:      draft.Role,
			Status:    draft.Status,
			Notes:     draft.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Applications().Insert(ctx, &created); err != nil {
			return err
		}
		if _, err := tx.History().Append(ctx, created.ID, created.Status, created.CreatedAt); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ApplicationCreated()
	s.metrics.StatusChanged(string(created.Status))
	slog.InfoContext(ctx, "Application created", "application_id", created.ID, "owner_id", ownerID, "status", created.Status)
	return &created, nil
}

// UpdateStatus sets the status and appends one history entry, also when the status is unchanged.
func (s *ApplicationService) UpdateStatus(ctx context.Context, ownerID, applicationID uuid.UUID, status domain.Status) (*domain.JobApplication, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	var updated *domain.JobApplication
	err := s.tx.InTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		app, err := tx.Applications().FindByIDAndOwner(ctx, applicationID, ownerID)
		if err != nil {
			return err
		}

		previous := app.Status
		app.Status = status
		app.UpdatedAt = s.now()
		if err := tx.Applications().Update(ctx, app); err != nil {
			return err
		}
		if _, err := tx.History().Append(ctx, app.ID, status, app.UpdatedAt); err != nil {
			return err
		}

		slog.DebugContext(ctx, "Application status transition", "application_id", app.ID, "from", previous, "to", status)
		updated = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.StatusChanged(string(status))
	slog.InfoContext(ctx, "Application status updated", "application_id", applicationID, "owner_id", ownerID, "status", status)
	return updated, nil
}

// Delete removes the history entries and then the application.
func (s *ApplicationService) Delete(ctx context.Context, ownerID, applicationID uuid.UUID) error {
	var removed int64
	err := s.tx.InTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		app, err := tx.Applications().FindByIDAndOwner(ctx, applicationID, ownerID)
		if err != nil {
			return err
		}

		removed, err = tx.History().DeleteAllForApplication(ctx, app.ID)
		if err != nil {
			return err
		}
		return tx.Applications().Delete(ctx, app.ID)
	})
	if err != nil {
		return err
	}

	s.metrics.ApplicationDeleted()
	slog.InfoContext(ctx, "Application deleted", "application_id", applicationID, "owner_id", ownerID, "history_entries", removed)
	return nil
}

// GetOwned reports a foreign application exactly like a missing one.
func (s *ApplicationService) GetOwned(ctx context.Context, ownerID, applicationID uuid.UUID) (*domain.JobApplication, error) {
	var app *domain.JobApplication
	err := s.tx.InTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		var err error
		app, err = getOwned(ctx, tx, ownerID, applicationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

func getOwned(ctx context.Context, tx domain.Tx, ownerID, applicationID uuid.UUID) (*domain.JobApplication, error) {
	app, err := tx.Applications().FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.OwnerID != ownerID {
		slog.DebugContext(ctx, "Application access denied", "application_id", applicationID, "requester_id", ownerID)
		return nil, domain.ErrApplicationNotFound
	}
	return app, nil
}

// ListHistory returns the trail of an owned application, oldest first.
func (s *ApplicationService) ListHistory(ctx context.Context, ownerID, applicationID uuid.UUID) ([]domain.StatusHistoryEntry, error) {
	var entries []domain.StatusHistoryEntry
	err := s.tx.InTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		if _, err := getOwned(ctx, tx, ownerID, applicationID); err != nil {
			return err
		}

		var err error
		entries, err = tx.History().ListByApplication(ctx, applicationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *ApplicationService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.JobApplication, error) {
	var apps []domain.JobApplication
	err := s.tx.InTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		var err error
		apps, err = tx.Applications().ListByOwner(ctx, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *ApplicationService) Summary(ctx context.Context, ownerID uuid.UUID) (domain.StatusSummary, error) {
	var counts map[domain.Status]int
	err := s.tx.InTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		var err error
		counts, err = tx.Applications().CountByStatus(ctx, ownerID)
		return err
	})
	if err != nil {
		return domain.StatusSummary{}, err
	}
	return domain.NewStatusSummary(counts), nil
}
