package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type memorySessionStore struct {
	sessions map[string]domain.Identity
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]domain.Identity)}
}

func (s *memorySessionStore) Save(_ context.Context, sessionID string, identity domain.Identity, _ time.Duration) error {
	s.sessions[sessionID] = identity
	return nil
}

func (s *memorySessionStore) Load(_ context.Context, sessionID string) (domain.Identity, error) {
	identity, ok := s.sessions[sessionID]
	if !ok {
		return domain.Identity{}, ports.ErrSessionNotFound
	}
	return identity, nil
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func TestSessionVerifier_RoundTrip(t *testing.T) {
	v := NewSessionVerifier(newMemorySessionStore(), time.Hour)

	sessionID, err := v.Issue(context.Background(), testIdentity)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if sessionID == "" {
		t.Fatalf("expected session id")
	}

	identity, err := v.Verify(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if identity != testIdentity {
		t.Fatalf("round trip mismatch: got %+v", identity)
	}
}

func TestSessionVerifier_UniqueIDs(t *testing.T) {
	v := NewSessionVerifier(newMemorySessionStore(), time.Hour)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		sessionID, err := v.Issue(context.Background(), testIdentity)
		if err != nil {
			t.Fatalf("Issue returned error: %v", err)
		}
		if _, dup := seen[sessionID]; dup {
			t.Fatalf("duplicate session id issued")
		}
		seen[sessionID] = struct{}{}
	}
}

func TestSessionVerifier_RevokeInvalidates(t *testing.T) {
	v := NewSessionVerifier(newMemorySessionStore(), time.Hour)

	sessionID, err := v.Issue(context.Background(), testIdentity)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if err := v.Revoke(context.Background(), sessionID); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	if _, err := v.Verify(context.Background(), sessionID); !errors.Is(err, ports.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after revoke, got %v", err)
	}
}

func TestSessionVerifier_UnknownSession(t *testing.T) {
	v := NewSessionVerifier(newMemorySessionStore(), time.Hour)

	if _, err := v.Verify(context.Background(), "does-not-exist"); !errors.Is(err, ports.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := v.Verify(context.Background(), ""); !errors.Is(err, ports.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for empty credential, got %v", err)
	}
}
