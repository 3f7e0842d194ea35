package ports

import (
	"context"

	"github.com/orgtree/hierarchy-api/internal/core/domain"
)

// RegisterInput carries the registration payload after schema validation.
type RegisterInput struct {
	Username string
	Password string
	// Role is Administrator or Regular User; empty defaults to Regular User.
	Role   string
	BossID *string
}

// AuthTokens is the access/refresh pair returned on authentication.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
}

// ReassignBossInput carries a boss-change request together with the
// requester identity taken from the access token.
type ReassignBossInput struct {
	Requester TokenClaims
	UserID    string
	BossID    string
}

// HierarchyNode is one user in the rendered hierarchy forest.
type HierarchyNode struct {
	ID           string           `json:"id"`
	Username     string           `json:"username"`
	Role         string           `json:"role"`
	Subordinates []*HierarchyNode `json:"subordinates"`
}

// UserService defines the use-case operations behind the HTTP handlers.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*AuthTokens, error)
	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ListUsers(ctx context.Context, requester TokenClaims) ([]*domain.User, error)
	ReassignBoss(ctx context.Context, in ReassignBossInput) error
	// Hierarchy renders the whole forest, rooted at users without a boss.
	Hierarchy(ctx context.Context) ([]*HierarchyNode, error)
}
