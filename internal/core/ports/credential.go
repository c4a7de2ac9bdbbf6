package ports

import (
	"context"
	"errors"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// Credential verification failures. Callers treat all three identically
// (the request is not authenticated); they exist so logs and audit records
// can name which leg of the check failed.
var (
	ErrTokenExpired    = errors.New("credential expired")
	ErrTokenInvalid    = errors.New("credential signature invalid")
	ErrTokenMalformed  = errors.New("credential malformed")
	ErrSessionNotFound = errors.New("session not found")
)

// CredentialVerifier issues and verifies bearer credentials. Two
// implementations exist: a stateless signed token and a server-side session
// store keyed by an opaque cookie value. A deployment selects exactly one.
type CredentialVerifier interface {
	// Issue creates a credential bound to identity, valid for the
	// verifier's fixed lifetime.
	Issue(ctx context.Context, identity domain.Identity) (string, error)
	// Verify checks credential and returns the identity it carries.
	Verify(ctx context.Context, credential string) (domain.Identity, error)
	// Revoke invalidates credential where the strategy supports it.
	// Stateless tokens cannot be revoked; the call is a no-op there.
	Revoke(ctx context.Context, credential string) error
}
