package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Bhanuvikas1/job-tracker/internal/adapter/postgres/sqlcgen"
	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HistoryRepo struct {
	q *sqlcgen.Queries
}

func NewHistoryRepo(pool *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{q: sqlcgen.New(pool)}
}

func toDomainHistoryEntry(row sqlcgen.StatusHistory) domain.StatusHistoryEntry {
	return domain.StatusHistoryEntry{
		ID:            row.ID,
		ApplicationID: row.ApplicationID,
		Status:        domain.Status(row.Status),
		ChangedAt:     row.ChangedAt.UTC(),
	}
}

// Append inserts one entry. The stored changed_at is clamped to the latest existing entry.
func (r *HistoryRepo) Append(ctx context.Context, applicationID uuid.UUID, status domain.Status, changedAt time.Time) (*domain.StatusHistoryEntry, error) {
	row, err := r.q.AppendStatusHistory(ctx, sqlcgen.AppendStatusHistoryParams{
		ApplicationID: applicationID,
		Status:        string(status),
		ChangedAt:     changedAt,
	})
	if isForeignKeyViolation(err) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to append status history: %w", err)
	}
	entry := toDomainHistoryEntry(row)
	return &entry, nil
}

func (r *HistoryRepo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.StatusHistoryEntry, error) {
	rows, err := r.q.ListStatusHistory(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}

	entries := make([]domain.StatusHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toDomainHistoryEntry(row))
	}
	return entries, nil
}

func (r *HistoryRepo) DeleteAllForApplication(ctx context.Context, applicationID uuid.UUID) (int64, error) {
	n, err := r.q.DeleteStatusHistory(ctx, applicationID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete status history: %w", err)
	}
	return n, nil
}
