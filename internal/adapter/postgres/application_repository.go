package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bhanuvikas1/job-tracker/internal/adapter/postgres/sqlcgen"
	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApplicationRepo struct {
	q *sqlcgen.Queries
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{q: sqlcgen.New(pool)}
}

func toDomainApplication(row sqlcgen.Application) domain.JobApplication {
	app := domain.JobApplication{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Company:   row.Company,
		Role:      row.Role,
		Status:    domain.Status(row.Status),
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
	if row.Notes != nil {
		app.Notes = *row.Notes
	}
	return app
}

// nullableNotes stores empty notes as NULL.
func nullableNotes(notes string) *string {
	if notes == "" {
		return nil
	}
	return &notes
}

func (r *ApplicationRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.JobApplication, error) {
	rows, err := r.q.ListApplicationsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	apps := make([]domain.JobApplication, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, toDomainApplication(row))
	}
	return apps, nil
}

func (r *ApplicationRepo) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.JobApplication, error) {
	row, err := r.q.GetApplicationByIDAndOwner(ctx, sqlcgen.GetApplicationByIDAndOwnerParams{ID: id, OwnerID: ownerID})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	app := toDomainApplication(row)
	return &app, nil
}

func (r *ApplicationRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	row, err := r.q.GetApplicationByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application by ID: %w", err)
	}
	app := toDomainApplication(row)
	return &app, nil
}

func (r *ApplicationRepo) Insert(ctx context.Context, app *domain.JobApplication) error {
	err := r.q.InsertApplication(ctx, sqlcgen.InsertApplicationParams{
		ID:        app.ID,
		OwnerID:   app.OwnerID,
		Company:   app.Company,
		Role:      app.Role,
		Status:    string(app.Status),
		Notes:     nullableNotes(app.Notes),
		CreatedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,
	})
	if isForeignKeyViolation(err) {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// Update writes the mutable columns. The owner is never part of the statement.
func (r *ApplicationRepo) Update(ctx context.Context, app *domain.JobApplication) error {
	n, err := r.q.UpdateApplication(ctx, sqlcgen.UpdateApplicationParams{
		ID:        app.ID,
		Status:    string(app.Status),
		Notes:     nullableNotes(app.Notes),
		UpdatedAt: app.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if n == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.q.DeleteApplication(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if n == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepo) CountByStatus(ctx context.Context, ownerID uuid.UUID) (map[domain.Status]int, error) {
	rows, err := r.q.CountApplicationsByStatus(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	counts := make(map[domain.Status]int, len(rows))
	for _, row := range rows {
		counts[domain.Status(row.Status)] = int(row.Total)
	}
	return counts, nil
}
