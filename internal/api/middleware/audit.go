package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// captureLimit bounds how much response body is retained for auditing.
// Slightly above the audit snippet cap so truncation happens after
// redaction, not before.
const captureLimit = 2048

// responseCapture tees the response body while it streams to the client.
type responseCapture struct {
	http.ResponseWriter
	body []byte
}

func (w *responseCapture) Write(b []byte) (int, error) {
	if remaining := captureLimit - len(w.body); remaining > 0 {
		if len(b) <= remaining {
			w.body = append(w.body, b...)
		} else {
			w.body = append(w.body, b[:remaining]...)
		}
	}
	return w.ResponseWriter.Write(b)
}

// Audit records the outcome of every request it wraps. The record is built
// synchronously once the response is finalized, so it reflects exactly this
// request, then handed to the recorder's queue; persistence happens off the
// request path and can neither slow down nor fail the response.
func Audit(recorder ports.AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			capture := &responseCapture{ResponseWriter: c.Response().Writer}
			c.Response().Writer = capture

			if err = next(c); err != nil {
				c.Error(err)
			}

			recorder.Record(buildRecord(c, capture.body))
			return err
		}
	}
}

func buildRecord(c echo.Context, body []byte) domain.AuditRecord {
	status := c.Response().Status
	success := status >= 200 && status < 400

	record := domain.AuditRecord{
		EventTime:    time.Now().UTC(),
		EventType:    eventType(c.Request().URL.Path),
		Method:       c.Request().Method,
		Path:         c.Request().URL.Path,
		StatusCode:   status,
		Success:      success,
		Reason:       reason(c, success),
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
		ResponseBody: domain.SummarizeBody(string(body)),
	}

	if identity, ok := IdentityFrom(c); ok {
		record.UserID = identity.ID
		record.Username = identity.Username
	}

	return record
}

func reason(c echo.Context, success bool) string {
	if r, ok := AuthReasonFrom(c); ok {
		return r
	}
	if success {
		return domain.AuditReasonSuccess
	}
	return domain.AuditReasonFailedRequest
}

func eventType(path string) string {
	switch {
	case strings.HasSuffix(path, "/login"),
		strings.HasSuffix(path, "/register"),
		strings.HasSuffix(path, "/logout"):
		return domain.AuditEventAuth
	default:
		return domain.AuditEventRequest
	}
}
