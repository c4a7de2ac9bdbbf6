// Package auth provides the two credential strategies behind
// ports.CredentialVerifier: a stateless signed token and a Redis-backed
// server-side session. A deployment wires exactly one of them.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// DefaultTokenTTL is the fixed credential lifetime. There is no refresh; an
// expired credential requires a fresh login.
const DefaultTokenTTL = 24 * time.Hour

// tokenClaims are the fields encoded in a signed token. Role is embedded,
// which keeps verification stateless; a role change therefore only takes
// effect when the user next logs in.
type tokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTVerifier issues and verifies HS256-signed stateless tokens.
type JWTVerifier struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTVerifier(secret string, ttl time.Duration) *JWTVerifier {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTVerifier{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (v *JWTVerifier) Issue(_ context.Context, identity domain.Identity) (string, error) {
	now := v.now().UTC()
	claims := tokenClaims{
		Username: identity.Username,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(v.secret)
}

// Verify checks signature and expiry. The three failure modes map to
// distinct sentinel errors so the audit trail can tell them apart; HTTP
// callers treat them all as "not authenticated".
func (v *JWTVerifier) Verify(_ context.Context, credential string) (domain.Identity, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return v.now() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Identity{}, ports.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Identity{}, ports.ErrTokenInvalid
		default:
			return domain.Identity{}, ports.ErrTokenMalformed
		}
	}
	if !tkn.Valid {
		return domain.Identity{}, ports.ErrTokenInvalid
	}

	return domain.Identity{
		ID:       claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// Revoke is a no-op: a signed token stays cryptographically valid until it
// expires. Logout only clears the client's cookie.
func (v *JWTVerifier) Revoke(_ context.Context, _ string) error {
	return nil
}
