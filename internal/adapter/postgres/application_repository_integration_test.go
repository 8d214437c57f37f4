package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRepo_InsertAndFind(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewApplicationRepo(pool)
	ctx := context.Background()
	owner := createTestUser(t, pool, "owner@example.com")
	now := time.Now().UTC().Truncate(time.Microsecond)

	app := &domain.JobApplication{
		ID: uuid.New(), OwnerID: owner.ID, Company: "Acme", Role: "Engineer",
		Status: domain.StatusApplied, Notes: "referral", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Insert(ctx, app))

	found, err := repo.FindByIDAndOwner(ctx, app.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", found.Company)
	assert.Equal(t, domain.StatusApplied, found.Status)
	assert.Equal(t, "referral", found.Notes)
	assert.True(t, now.Equal(found.CreatedAt))

	byID, err := repo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, byID.OwnerID)
}

func TestApplicationRepo_EmptyNotesRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	owner := createTestUser(t, pool, "owner@example.com")
	app := createTestApplication(t, pool, owner.ID, "Acme", domain.StatusApplied, time.Now().UTC())

	found, err := NewApplicationRepo(pool).FindByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Notes)
}

func TestApplicationRepo_FindByIDAndOwner_ForeignOwner(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewApplicationRepo(pool)
	owner := createTestUser(t, pool, "owner@example.com")
	stranger := createTestUser(t, pool, "stranger@example.com")
	app := createTestApplication(t, pool, owner.ID, "Acme", domain.StatusApplied, time.Now().UTC())

	_, err := repo.FindByIDAndOwner(context.Background(), app.ID, stranger.ID)

	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
}

func TestApplicationRepo_InsertUnknownOwner(t *testing.T) {
	pool := setupTestDB(t)
	now := time.Now().UTC()

	err := NewApplicationRepo(pool).Insert(context.Background(), &domain.JobApplication{
		ID: uuid.New(), OwnerID: uuid.New(), Company: "Acme", Role: "Engineer",
		Status: domain.StatusApplied, CreatedAt: now, UpdatedAt: now,
	})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestApplicationRepo_ListByOwner_MostRecentlyUpdatedFirst(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewApplicationRepo(pool)
	ctx := context.Background()
	owner := createTestUser(t, pool, "owner@example.com")
	other := createTestUser(t, pool, "other@example.com")
	base := time.Now().UTC().Truncate(time.Microsecond)

	older := createTestApplication(t, pool, owner.ID, "Older", domain.StatusApplied, base)
	newer := createTestApplication(t, pool, owner.ID, "Newer", domain.StatusApplied, base.Add(time.Minute))
	createTestApplication(t, pool, other.ID, "NotMine", domain.StatusApplied, base)

	apps, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, newer.ID, apps[0].ID)
	assert.Equal(t, older.ID, apps[1].ID)

	empty, err := repo.ListByOwner(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestApplicationRepo_UpdateKeepsOwner(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewApplicationRepo(pool)
	ctx := context.Background()
	owner := createTestUser(t, pool, "owner@example.com")
	app := createTestApplication(t, pool, owner.ID, "Acme", domain.StatusApplied, time.Now().UTC())

	app.Status = domain.StatusInterview
	app.OwnerID = uuid.New()
	app.UpdatedAt = app.UpdatedAt.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, app))

	found, err := repo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInterview, found.Status)
	assert.Equal(t, owner.ID, found.OwnerID)
}

func TestApplicationRepo_UpdateAndDeleteMissing(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewApplicationRepo(pool)
	ctx := context.Background()

	err := repo.Update(ctx, &domain.JobApplication{ID: uuid.New(), Status: domain.StatusOffer, UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)

	err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
}

func TestApplicationRepo_CountByStatus(t *testing.T) {
	pool := setupTestDB(t)
	owner := createTestUser(t, pool, "owner@example.com")
	now := time.Now().UTC()
	createTestApplication(t, pool, owner.ID, "A", domain.StatusApplied, now)
	createTestApplication(t, pool, owner.ID, "B", domain.StatusApplied, now)
	createTestApplication(t, pool, owner.ID, "C", domain.StatusOffer, now)

	counts, err := NewApplicationRepo(pool).CountByStatus(context.Background(), owner.ID)
	require.NoError(t, err)

	assert.Equal(t, map[domain.Status]int{domain.StatusApplied: 2, domain.StatusOffer: 1}, counts)
}
