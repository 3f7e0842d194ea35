package ports

import (
	"context"

	"github.com/orgtree/hierarchy-api/internal/core/domain"
)

// HierarchyEngine walks and mutates the boss forest.
type HierarchyEngine interface {
	// IsAncestorOf reports whether candidateBossID is userID itself or any
	// ancestor on userID's boss chain.
	IsAncestorOf(ctx context.Context, candidateBossID, userID string) (bool, error)
	// FindAllSubordinates returns every user transitively below bossID.
	FindAllSubordinates(ctx context.Context, bossID string) ([]*domain.User, error)
	// ChangeBoss atomically reassigns userID under newBossID, maintaining the
	// subordinate back-references and derived roles on both bosses.
	ChangeBoss(ctx context.Context, newBossID, userID string) error
}

// AuthorizationPolicy holds the role-based visibility and mutation rules.
type AuthorizationPolicy interface {
	VisibleUsers(ctx context.Context, requester *domain.User) ([]*domain.User, error)
	// CanReassignBoss returns nil when the requester may move targetUserID
	// under newBossID, or the specific rejection error otherwise.
	CanReassignBoss(ctx context.Context, requester TokenClaims, targetUserID, newBossID string) error
}
