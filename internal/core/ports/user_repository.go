package ports

import (
	"context"

	"github.com/orgtree/hierarchy-api/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// FindByBossID returns the direct subordinates of bossID in insertion order.
	FindByBossID(ctx context.Context, bossID string) ([]*domain.User, error)
	// Update persists role, boss and subordinate-list changes for an existing record.
	Update(ctx context.Context, user *domain.User) error
	// DeleteAll wipes the collection. Test-cleanup utility only.
	DeleteAll(ctx context.Context) error
}

// TxRunner scopes a function to a single store transaction. The callback's
// mutations commit together or not at all; the callback must use the ctx it
// receives for every repository call.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
