package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

const (
	channelBuffer = 256
	writeTimeout  = 5 * time.Second
	drainTimeout  = 3 * time.Second
)

// Recorder decouples audit persistence from the request path. Records flow
// through a buffered channel to a single background writer; per-request
// ordering is preserved because each request enqueues exactly one record,
// built after its response is finalized.
type Recorder struct {
	records chan domain.AuditRecord
	repo    ports.AuditRepository
	log     zerolog.Logger
	done    chan struct{}
}

func NewRecorder(repo ports.AuditRepository, log zerolog.Logger) *Recorder {
	return &Recorder{
		records: make(chan domain.AuditRecord, channelBuffer),
		repo:    repo,
		log:     log,
		done:    make(chan struct{}),
	}
}

// Start launches the writer goroutine. It stops when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	go r.run(ctx)
}

// Record enqueues one audit record without blocking. When the buffer is
// full the record is dropped: auditing is best-effort and must never slow
// down or fail the request that produced it.
func (r *Recorder) Record(record domain.AuditRecord) {
	select {
	case r.records <- record:
	default:
		metrics.AuditDroppedTotal.Inc()
		r.log.Warn().
			Str("path", record.Path).
			Msg("audit queue full, record dropped")
	}
}

// Stop waits for the writer to exit, then drains whatever is still queued
// with a short deadline. Anything left after the deadline is lost, which is
// acceptable for a best-effort channel.
func (r *Recorder) Stop() {
	<-r.done

	deadline := time.Now().Add(drainTimeout)
	for {
		select {
		case record := <-r.records:
			ctx, cancel := context.WithDeadline(context.Background(), deadline)
			r.write(ctx, record)
			cancel()
			if time.Now().After(deadline) {
				return
			}
		default:
			return
		}
	}
}

func (r *Recorder) run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case record, ok := <-r.records:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			r.write(writeCtx, record)
			cancel()
		}
	}
}

// write persists one record, swallowing any failure.
func (r *Recorder) write(ctx context.Context, record domain.AuditRecord) {
	if err := r.repo.Insert(ctx, &record); err != nil {
		metrics.AuditWriteErrorsTotal.Inc()
		r.log.Error().Err(err).
			Str("method", record.Method).
			Str("path", record.Path).
			Msg("audit write failed")
	}
}
