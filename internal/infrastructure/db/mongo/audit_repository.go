package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clickerrealm/community-api/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository persists the moderation/auth audit trail.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	ID        string `bson:"_id"`
	ActorID   string `bson:"actor_id"`
	Actor     string `bson:"actor"`
	Action    string `bson:"action"`
	TargetID  string `bson:"target_id,omitempty"`
	Detail    string `bson:"detail,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAuditEvent{
		ID:        event.ID,
		ActorID:   event.ActorID,
		Actor:     event.Actor,
		Action:    string(event.Action),
		TargetID:  event.TargetID,
		Detail:    event.Detail,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]*domain.AuditEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoAuditEvent
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}

	events := make([]*domain.AuditEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, &domain.AuditEvent{
			ID:        d.ID,
			ActorID:   d.ActorID,
			Actor:     d.Actor,
			Action:    domain.AuditAction(d.Action),
			TargetID:  d.TargetID,
			Detail:    d.Detail,
			Timestamp: unixToTime(d.Timestamp),
		})
	}
	return events, nil
}
