package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// RBAC enforces role-based access control against a static allowed set.
// A request with no identity gets 401; Auth is expected to have run first.
// A present identity with a role outside the set gets 403, never 401.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return reject(c, domain.AuditReasonNoCredential)
			}

			if _, ok := allowed[identity.Role]; !ok {
				c.Set(authReasonKey, domain.AuditReasonAccessDenied)
				metrics.AuthFailuresTotal.WithLabelValues(domain.AuditReasonAccessDenied).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}

			return next(c)
		}
	}
}
