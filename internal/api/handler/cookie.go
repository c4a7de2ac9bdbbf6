package handler

import (
	"net/http"
	"time"

	"github.com/taskboard/taskboard-api/internal/infrastructure/config"
)

// authCookie builds the credential cookie. Both the login (set) and logout
// (clear) paths go through here, so the security attributes are identical in
// both directions; a cleared cookie differs only in value and max-age.
func authCookie(cfg config.CookieConfig, value string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     cfg.Name,
		Value:    value,
		Path:     "/",
		Domain:   cfg.Domain,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSiteMode(),
	}
	if maxAge > 0 {
		cookie.MaxAge = int(maxAge.Seconds())
	} else {
		cookie.MaxAge = -1
	}
	return cookie
}
