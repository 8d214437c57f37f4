package redis

import (
	"context"
	"testing"
	"time"

	"github.com/Bhanuvikas1/job-tracker/internal/adapter/memory"
	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_CreateResolveDelete(t *testing.T) {
	client := setupTestClient(t)
	repo := NewSessionRepo(client)
	ctx := context.Background()
	userID := uuid.New()

	token, err := repo.Create(ctx, userID, time.Hour)
	require.NoError(t, err)
	assert.Len(t, token, 2*tokenBytes)

	got, err := repo.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	ttl, err := client.TTL(ctx, sessionKey(token)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)

	require.NoError(t, repo.Delete(ctx, token))
	_, err = repo.Resolve(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, repo.Delete(ctx, token))
}

func TestSessionRepo_TokensAreUnique(t *testing.T) {
	repo := NewSessionRepo(setupTestClient(t))
	ctx := context.Background()
	userID := uuid.New()

	a, err := repo.Create(ctx, userID, time.Hour)
	require.NoError(t, err)
	b, err := repo.Create(ctx, userID, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSessionRepo_ResolveUnknownOrMalformed(t *testing.T) {
	client := setupTestClient(t)
	repo := NewSessionRepo(client)
	ctx := context.Background()

	_, err := repo.Resolve(ctx, "")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = repo.Resolve(ctx, "deadbeef")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, client.Set(ctx, sessionKey("garbled"), "not-a-uuid", time.Minute).Err())
	_, err = repo.Resolve(ctx, "garbled")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepo_Expires(t *testing.T) {
	repo := NewSessionRepo(setupTestClient(t))
	ctx := context.Background()

	token, err := repo.Create(ctx, uuid.New(), 100*time.Millisecond)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := repo.Resolve(ctx, token)
		return err != nil
	}, 3*time.Second, 50*time.Millisecond)
}

func TestSessionRepo_PruneOrphans(t *testing.T) {
	client := setupTestClient(t)
	repo := NewSessionRepo(client)
	ctx := context.Background()

	store := memory.NewStore()
	live := &domain.User{ID: uuid.New(), Name: "Live", Email: "live@example.com"}
	require.NoError(t, store.Users().Create(ctx, live))

	liveToken, err := repo.Create(ctx, live.ID, time.Hour)
	require.NoError(t, err)
	orphanToken, err := repo.Create(ctx, uuid.New(), time.Hour)
	require.NoError(t, err)

	found, err := repo.PruneOrphans(ctx, store.Users(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, found)
	_, err = repo.Resolve(ctx, orphanToken)
	require.NoError(t, err, "dry run must not delete")

	found, err = repo.PruneOrphans(ctx, store.Users(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, found)

	_, err = repo.Resolve(ctx, orphanToken)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = repo.Resolve(ctx, liveToken)
	assert.NoError(t, err)
}
