package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/userhub/user-management-api/internal/core/domain"
)

const collectionAudit = "audit_events"

// AuditRepository persists audit events to an append-only collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

type auditDoc struct {
	ID        string    `bson:"_id"`
	Action    string    `bson:"action"`
	SubjectID string    `bson:"subject_id,omitempty"`
	ActorID   string    `bson:"actor_id,omitempty"`
	Email     string    `bson:"email,omitempty"`
	IP        string    `bson:"ip,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

// Insert appends a single audit event.
func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditDoc{
		ID:        event.ID,
		Action:    event.Action,
		SubjectID: event.SubjectID,
		ActorID:   event.ActorID,
		Email:     event.Email,
		IP:        event.IP,
		Timestamp: event.Timestamp,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// EnsureIndexes creates lookup indexes for the audit trail.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "subject_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "action", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
