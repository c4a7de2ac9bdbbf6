package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// AuditRepository persists audit records.
type AuditRepository interface {
	Insert(ctx context.Context, record *domain.AuditRecord) error
}

// AuditRecorder accepts records for asynchronous persistence. Record must
// never block the caller or surface an error: a sink failure or a full
// queue costs the record, not the request.
type AuditRecorder interface {
	Record(record domain.AuditRecord)
}
