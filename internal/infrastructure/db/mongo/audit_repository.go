package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

const auditCollection = "audit_logs"

type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditRecord struct {
	EventTime    time.Time `bson:"event_time"`
	UserID       string    `bson:"user_id,omitempty"`
	Username     string    `bson:"username,omitempty"`
	EventType    string    `bson:"event_type"`
	Method       string    `bson:"method"`
	Path         string    `bson:"path"`
	StatusCode   int       `bson:"status_code"`
	Success      bool      `bson:"success"`
	Reason       string    `bson:"reason"`
	IPAddress    string    `bson:"ip_address,omitempty"`
	UserAgent    string    `bson:"user_agent,omitempty"`
	ResponseBody string    `bson:"response_body,omitempty"`
}

// Insert appends one record. Records are never updated or deleted here.
func (r *MongoAuditRepository) Insert(ctx context.Context, record *domain.AuditRecord) error {
	doc := mongoAuditRecord{
		EventTime:    record.EventTime,
		UserID:       record.UserID,
		Username:     record.Username,
		EventType:    record.EventType,
		Method:       record.Method,
		Path:         record.Path,
		StatusCode:   record.StatusCode,
		Success:      record.Success,
		Reason:       record.Reason,
		IPAddress:    record.IPAddress,
		UserAgent:    record.UserAgent,
		ResponseBody: record.ResponseBody,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}
