package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// SessionStore is the persistence contract for server-side sessions. The
// Redis implementation lives in internal/infrastructure/db/redis.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, identity domain.Identity, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (domain.Identity, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionVerifier implements the session-store strategy: the cookie carries
// only an opaque lookup key and the store is the source of truth. Unlike the
// stateless token, Revoke here actually invalidates the credential.
type SessionVerifier struct {
	store SessionStore
	ttl   time.Duration
}

func NewSessionVerifier(store SessionStore, ttl time.Duration) *SessionVerifier {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &SessionVerifier{store: store, ttl: ttl}
}

func (v *SessionVerifier) Issue(ctx context.Context, identity domain.Identity) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	sessionID := hex.EncodeToString(buf)

	if err := v.store.Save(ctx, sessionID, identity, v.ttl); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return sessionID, nil
}

// Verify resolves the session id against the store. Expiry needs no check
// here: the store evicts the record when its TTL lapses, so an expired
// session is simply absent.
func (v *SessionVerifier) Verify(ctx context.Context, credential string) (domain.Identity, error) {
	if credential == "" {
		return domain.Identity{}, ports.ErrTokenMalformed
	}
	identity, err := v.store.Load(ctx, credential)
	if err != nil {
		return domain.Identity{}, err
	}
	return identity, nil
}

func (v *SessionVerifier) Revoke(ctx context.Context, credential string) error {
	return v.store.Delete(ctx, credential)
}
