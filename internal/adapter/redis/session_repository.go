package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	tokenBytes       = 32
	scanBatchSize    = 100
)

// SessionRepo stores login sessions as session:{token} -> user id with a TTL.
type SessionRepo struct {
	rdb goredis.Cmdable
}

var _ domain.SessionRepository = (*SessionRepo)(nil)

func NewSessionRepo(rdb goredis.Cmdable) *SessionRepo {
	return &SessionRepo{rdb: rdb}
}

func (s *SessionRepo) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKey(token), userID.String(), ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (s *SessionRepo) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, domain.ErrSessionNotFound
	}

	val, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, goredis.Nil) {
		return uuid.Nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to read session: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		slog.WarnContext(ctx, "Session holds malformed user id", "error", err)
		return uuid.Nil, domain.ErrSessionNotFound
	}
	return userID, nil
}

// Delete is idempotent.
func (s *SessionRepo) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PruneOrphans removes sessions whose user no longer exists and returns how many
// were found. With dryRun set nothing is deleted.
func (s *SessionRepo) PruneOrphans(ctx context.Context, users domain.UserRepository, dryRun bool) (int, error) {
	var cursor uint64
	orphans := 0

	for {
		if err := ctx.Err(); err != nil {
			return orphans, fmt.Errorf("scan cancelled after %d orphans: %w", orphans, err)
		}

		keys, next, err := s.rdb.Scan(ctx, cursor, sessionKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return orphans, fmt.Errorf("scan failed: %w", err)
		}

		for _, key := range keys {
			orphan, err := s.isOrphan(ctx, users, key)
			if err != nil {
				return orphans, err
			}
			if !orphan {
				continue
			}

			orphans++
			if dryRun {
				slog.InfoContext(ctx, "Orphaned session found", "key", redactKey(key))
				continue
			}
			if err := s.rdb.Del(ctx, key).Err(); err != nil {
				return orphans, fmt.Errorf("failed to delete orphaned session: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			return orphans, nil
		}
	}
}

func (s *SessionRepo) isOrphan(ctx context.Context, users domain.UserRepository, key string) (bool, error) {
	userID, err := s.Resolve(ctx, strings.TrimPrefix(key, sessionKeyPrefix))
	if errors.Is(err, domain.ErrSessionNotFound) {
		// Expired between SCAN and GET, or unreadable.
		return false, nil
	}
	if err != nil {
		return false, err
	}

	_, err = users.GetByID(ctx, userID)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, domain.ErrUserNotFound):
		return true, nil
	default:
		return false, fmt.Errorf("failed to look up session owner: %w", err)
	}
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// redactKey keeps enough of a session key to correlate log lines without leaking the token.
func redactKey(key string) string {
	token := strings.TrimPrefix(key, sessionKeyPrefix)
	if len(token) > 8 {
		token = token[:8]
	}
	return sessionKeyPrefix + token + "..."
}
