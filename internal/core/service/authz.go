package service

import (
	"context"
	"errors"

	"github.com/orgtree/hierarchy-api/internal/core/domain"
	"github.com/orgtree/hierarchy-api/internal/core/ports"
)

// AuthorizationPolicy applies the role-based visibility and mutation rules on
// top of the hierarchy engine.
type AuthorizationPolicy struct {
	repo   ports.UserRepository
	engine ports.HierarchyEngine
}

func NewAuthorizationPolicy(repo ports.UserRepository, engine ports.HierarchyEngine) *AuthorizationPolicy {
	return &AuthorizationPolicy{repo: repo, engine: engine}
}

// VisibleUsers returns the records the requester is allowed to see:
// Administrators see everyone, Bosses see themselves plus their transitive
// subtree, Regular Users see only themselves.
func (p *AuthorizationPolicy) VisibleUsers(ctx context.Context, requester *domain.User) ([]*domain.User, error) {
	switch requester.Role {
	case domain.RoleAdministrator:
		return p.repo.FindAll(ctx)
	case domain.RoleBoss:
		subs, err := p.engine.FindAllSubordinates(ctx, requester.ID)
		if err != nil {
			return nil, err
		}
		return append([]*domain.User{requester}, subs...), nil
	case domain.RoleRegularUser:
		return []*domain.User{requester}, nil
	default:
		return nil, domain.ErrInvalidRole
	}
}

// CanReassignBoss returns nil when the requester may move targetUserID under
// newBossID, or the specific rejection otherwise. Administrators skip the
// responsibility check but never the cycle check.
func (p *AuthorizationPolicy) CanReassignBoss(ctx context.Context, requester ports.TokenClaims, targetUserID, newBossID string) error {
	if targetUserID == newBossID {
		return domain.ErrSelfBoss
	}

	switch requester.Role {
	case domain.RoleRegularUser:
		return domain.ErrForbidden
	case domain.RoleBoss:
		responsible, err := p.engine.IsAncestorOf(ctx, requester.UserID, targetUserID)
		if err != nil {
			return err
		}
		if !responsible {
			return domain.ErrForbidden
		}
	case domain.RoleAdministrator:
	default:
		return domain.ErrInvalidRole
	}

	descendant, err := p.engine.IsAncestorOf(ctx, targetUserID, newBossID)
	if err != nil {
		// The walk starts at newBossID, so not-found here means the new boss.
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrBossNotFound
		}
		return err
	}
	if descendant {
		return domain.ErrInvalidHierarchy
	}

	return nil
}
