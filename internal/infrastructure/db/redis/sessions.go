package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// SessionStore persists server-side sessions as Redis hashes under
// session:<id> with a TTL. Expiry is enforced by Redis: a lapsed session is
// simply gone.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, identity domain.Identity, ttl time.Duration) error {
	key := s.key(sessionID)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"id":       identity.ID,
		"username": identity.Username,
		"role":     identity.Role,
	})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (domain.Identity, error) {
	fields, err := s.client.HGetAll(ctx, s.key(sessionID)).Result()
	if err != nil {
		return domain.Identity{}, fmt.Errorf("load session: %w", err)
	}
	// HGetAll returns an empty map, not a nil error, for a missing key.
	if len(fields) == 0 {
		return domain.Identity{}, ports.ErrSessionNotFound
	}

	return domain.Identity{
		ID:       fields["id"],
		Username: fields["username"],
		Role:     fields["role"],
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + sessionID
}
