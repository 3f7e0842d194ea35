package ports

import (
	"context"
	"time"
)

// BossChangeEvent is the audit record emitted after a committed reassignment.
type BossChangeEvent struct {
	UserID     string
	OldBossID  *string
	NewBossID  string
	ActorID    string
	OccurredAt time.Time
}

// AuditRecorder accepts events for asynchronous recording. Implementations
// must preserve per-user ordering.
type AuditRecorder interface {
	Enqueue(event BossChangeEvent)
}

// AuditRepository persists audit records.
type AuditRepository interface {
	Insert(ctx context.Context, event *BossChangeEvent) error
}
