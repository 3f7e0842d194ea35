package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/orgtree/hierarchy-api/internal/core/ports"
)

const auditCollection = "hierarchy_audit"

// MongoAuditRepository persists boss-change audit records.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	UserID     string    `bson:"user_id"`
	OldBossID  *string   `bson:"old_boss_id"`
	NewBossID  string    `bson:"new_boss_id"`
	ActorID    string    `bson:"actor_id"`
	OccurredAt time.Time `bson:"occurred_at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event *ports.BossChangeEvent) error {
	doc := mongoAuditEvent{
		UserID:     event.UserID,
		OldBossID:  event.OldBossID,
		NewBossID:  event.NewBossID,
		ActorID:    event.ActorID,
		OccurredAt: event.OccurredAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
