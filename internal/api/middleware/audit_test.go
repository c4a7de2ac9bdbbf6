package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/auth"
	"github.com/taskboard/taskboard-api/internal/core/domain"
)

type captureRecorder struct {
	records []domain.AuditRecord
}

func (r *captureRecorder) Record(record domain.AuditRecord) {
	r.records = append(r.records, record)
}

func (r *captureRecorder) last(t *testing.T) domain.AuditRecord {
	t.Helper()
	if len(r.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(r.records))
	}
	return r.records[0]
}

func TestAudit_SuccessfulRequest(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(identityKey, domain.Identity{ID: "user_1", Username: "alice_1", Role: domain.RoleUser})

	recorder := &captureRecorder{}
	mw := Audit(recorder)
	handler := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "ok"})
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	record := recorder.last(t)
	if record.StatusCode != http.StatusOK || !record.Success {
		t.Fatalf("unexpected outcome: %+v", record)
	}
	if record.Reason != domain.AuditReasonSuccess {
		t.Fatalf("expected success reason, got %q", record.Reason)
	}
	if record.UserID != "user_1" || record.Username != "alice_1" {
		t.Fatalf("identity not captured: %+v", record)
	}
	if record.Method != http.MethodGet || record.Path != "/api/tasks" {
		t.Fatalf("request not captured: %+v", record)
	}
	if record.IPAddress != "203.0.113.9" {
		t.Fatalf("forwarded-for not preferred: %q", record.IPAddress)
	}
	if record.UserAgent != "test-agent" {
		t.Fatalf("user agent not captured: %q", record.UserAgent)
	}
	if record.EventType != domain.AuditEventRequest {
		t.Fatalf("expected request event type, got %q", record.EventType)
	}
}

func TestAudit_RedactsPasswords(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	recorder := &captureRecorder{}
	mw := Audit(recorder)
	handler := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message":  "debug echo",
			"password": "Str0ng!Pw",
		})
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	record := recorder.last(t)
	if strings.Contains(record.ResponseBody, "Str0ng!Pw") {
		t.Fatalf("password leaked into audit record: %s", record.ResponseBody)
	}
	if !strings.Contains(record.ResponseBody, "[REDACTED]") {
		t.Fatalf("expected redaction marker: %s", record.ResponseBody)
	}
	if record.EventType != domain.AuditEventAuth {
		t.Fatalf("login should be an auth event, got %q", record.EventType)
	}
}

func TestAudit_FailedRequestReason(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	recorder := &captureRecorder{}
	mw := Audit(recorder)
	handler := mw(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	})

	// Audit resolves the error itself so the response is committed before
	// the record is built; the returned error hits the committed guard.
	_ = handler(c)

	record := recorder.last(t)
	if record.StatusCode != http.StatusNotFound || record.Success {
		t.Fatalf("unexpected outcome: %+v", record)
	}
	if record.Reason != domain.AuditReasonFailedRequest {
		t.Fatalf("expected failed_request reason, got %q", record.Reason)
	}
}

func TestAudit_AuthRejectionReason(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	recorder := &captureRecorder{}
	verifier := auth.NewJWTVerifier("secret", time.Hour)
	handler := Audit(recorder)(Auth(verifier, cookieName, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}))

	_ = handler(c)

	record := recorder.last(t)
	if record.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", record.StatusCode)
	}
	if record.Reason != domain.AuditReasonNoCredential {
		t.Fatalf("expected no_credential reason, got %q", record.Reason)
	}
}

func TestAudit_TruncatesLongBodies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	recorder := &captureRecorder{}
	mw := Audit(recorder)
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, strings.Repeat("x", 5000))
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	record := recorder.last(t)
	if !strings.HasSuffix(record.ResponseBody, "...[truncated]") {
		t.Fatalf("expected truncation marker")
	}
	if len(record.ResponseBody) > 1100 {
		t.Fatalf("snippet too long: %d", len(record.ResponseBody))
	}
}
