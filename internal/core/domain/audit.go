package domain

import (
	"regexp"
	"time"
)

// Audit event types.
const (
	AuditEventRequest = "request"
	AuditEventAuth    = "auth"
)

// Audit reason codes. Authentication failures carry a code naming which leg
// of the check failed; the HTTP response never distinguishes them.
const (
	AuditReasonSuccess          = "success"
	AuditReasonFailedRequest    = "failed_request"
	AuditReasonNoCredential     = "no_credential"
	AuditReasonInvalidOrExpired = "invalid_or_expired"
	AuditReasonAccessDenied     = "access_denied"
)

// AuditRecord is an append-only entry describing one request outcome.
// UserID and Username are empty when the request was unauthenticated.
type AuditRecord struct {
	EventTime    time.Time
	UserID       string
	Username     string
	EventType    string
	Method       string
	Path         string
	StatusCode   int
	Success      bool
	Reason       string
	IPAddress    string
	UserAgent    string
	ResponseBody string
}

const (
	auditBodyMaxLen = 1000
	redactedMarker  = `"[REDACTED]"`
)

// passwordFields matches JSON string values keyed by password-like names.
var passwordFields = regexp.MustCompile(`(?i)("(?:password|passwordHash|password_hash|currentPassword|newPassword)"\s*:\s*)"(?:[^"\\]|\\.)*"`)

// SummarizeBody prepares a response body for auditing: password-like fields
// are replaced with a redaction marker and the result is capped at 1000
// characters. Redaction happens before truncation so a cut cannot expose a
// partially redacted value.
func SummarizeBody(body string) string {
	if body == "" {
		return ""
	}
	s := passwordFields.ReplaceAllString(body, `$1`+redactedMarker)
	if len(s) > auditBodyMaxLen {
		return s[:auditBodyMaxLen] + "...[truncated]"
	}
	return s
}
