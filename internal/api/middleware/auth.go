package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// Context keys shared between the auth middlewares and the audit hook.
const (
	identityKey   = "identity"
	authReasonKey = "auth_reason"
)

// IdentityFrom returns the authenticated identity attached to the request,
// if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}

// AuthReasonFrom returns the reason code recorded for a rejected request.
func AuthReasonFrom(c echo.Context) (string, bool) {
	reason, ok := c.Get(authReasonKey).(string)
	return reason, ok
}

// Auth extracts the credential cookie, verifies it, and attaches the
// resulting identity to the request context. Verification happens exactly
// once per request; there is no refresh path. The client response never
// distinguishes a missing credential from a bad one, but the reason code is
// kept on the context for logs and audit records.
func Auth(verifier ports.CredentialVerifier, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return reject(c, domain.AuditReasonNoCredential)
			}

			identity, err := verifier.Verify(c.Request().Context(), cookie.Value)
			if err != nil {
				// A failing verifier backend is not a bad credential;
				// let it surface as an internal error instead of
				// mislabeling the request in the audit trail.
				if !credentialError(err) {
					return fmt.Errorf("verify credential: %w", err)
				}
				log.Debug().Err(err).
					Str("path", c.Path()).
					Msg("credential rejected")
				return reject(c, domain.AuditReasonInvalidOrExpired)
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// credentialError reports whether err describes a rejected credential as
// opposed to a verifier backend failure.
func credentialError(err error) bool {
	return errors.Is(err, ports.ErrTokenExpired) ||
		errors.Is(err, ports.ErrTokenInvalid) ||
		errors.Is(err, ports.ErrTokenMalformed) ||
		errors.Is(err, ports.ErrSessionNotFound)
}

func reject(c echo.Context, reason string) error {
	c.Set(authReasonKey, reason)
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
}
