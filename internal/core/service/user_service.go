package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/orgtree/hierarchy-api/internal/api/metrics"
	"github.com/orgtree/hierarchy-api/internal/core/domain"
	"github.com/orgtree/hierarchy-api/internal/core/ports"
)

// UserService orchestrates registration, authentication and hierarchy
// operations for the HTTP handlers.
type UserService struct {
	repo    ports.UserRepository
	tx      ports.TxRunner
	engine  ports.HierarchyEngine
	policy  ports.AuthorizationPolicy
	creds   ports.CredentialService
	refresh ports.RefreshTokenStore
	audit   ports.AuditRecorder
	log     zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	tx ports.TxRunner,
	engine ports.HierarchyEngine,
	policy ports.AuthorizationPolicy,
	creds ports.CredentialService,
	refresh ports.RefreshTokenStore,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		repo:    repo,
		tx:      tx,
		engine:  engine,
		policy:  policy,
		creds:   creds,
		refresh: refresh,
		audit:   audit,
		log:     log,
	}
}

// Register creates a user and, for non-Administrators, links it under its
// boss. The insert and the boss-side subordinate/role update commit in one
// transaction.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleRegularUser
	}
	if role != domain.RoleAdministrator && role != domain.RoleRegularUser {
		return nil, domain.ErrRegistrationRole
	}
	if role == domain.RoleAdministrator && in.BossID != nil {
		return nil, domain.ErrAdminWithBoss
	}
	if role != domain.RoleAdministrator && in.BossID == nil {
		return nil, domain.ErrBossRequired
	}

	hash, err := s.creds.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	var created *domain.User
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
			return domain.ErrUsernameTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		var boss *domain.User
		if in.BossID != nil {
			boss, err = s.repo.FindByID(ctx, *in.BossID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return domain.ErrBossNotFound
				}
				return err
			}
		}

		created, err = s.repo.Create(ctx, &domain.User{
			Username:     in.Username,
			PasswordHash: hash,
			Role:         role,
			BossID:       in.BossID,
			Subordinates: []string{},
		})
		if err != nil {
			return err
		}

		if boss != nil {
			boss.Subordinates = append(boss.Subordinates, created.ID)
			boss.ApplyDerivedRole()
			if err := s.repo.Update(ctx, boss); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(created.Role).Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Authenticate verifies credentials and issues an access/refresh token pair.
// The refresh token is recorded so only the most recently issued one works.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*ports.AuthTokens, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.creds.CheckPassword(password, user.PasswordHash) {
		metrics.AuthAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.creds.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.creds.IssueRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.refresh.Save(ctx, user.ID, refresh, s.creds.RefreshTTL()); err != nil {
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("ok").Inc()
	return &ports.AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a stored, unexpired refresh token for a new access token.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.creds.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	stored, err := s.refresh.Lookup(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	if stored == "" || stored != refreshToken {
		return "", domain.ErrTokenInvalid
	}

	return s.creds.IssueAccessToken(claims.UserID, claims.Role)
}

// ListUsers returns the users visible to the requester per the policy.
func (s *UserService) ListUsers(ctx context.Context, requester ports.TokenClaims) ([]*domain.User, error) {
	user, err := s.repo.FindByID(ctx, requester.UserID)
	if err != nil {
		return nil, err
	}
	return s.policy.VisibleUsers(ctx, user)
}

// ReassignBoss applies the authorization policy, then the transactional boss
// change, and finally queues the audit record.
func (s *UserService) ReassignBoss(ctx context.Context, in ports.ReassignBossInput) error {
	if err := s.policy.CanReassignBoss(ctx, in.Requester, in.UserID, in.BossID); err != nil {
		metrics.BossChangesTotal.WithLabelValues("rejected").Inc()
		return err
	}

	user, err := s.repo.FindByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	oldBossID := user.BossID

	if err := s.engine.ChangeBoss(ctx, in.BossID, in.UserID); err != nil {
		metrics.BossChangesTotal.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.BossChangesTotal.WithLabelValues("ok").Inc()
	if s.audit != nil {
		s.audit.Enqueue(ports.BossChangeEvent{
			UserID:     in.UserID,
			OldBossID:  oldBossID,
			NewBossID:  in.BossID,
			ActorID:    in.Requester.UserID,
			OccurredAt: time.Now().UTC(),
		})
	}
	return nil
}

// Hierarchy renders the forest as nested nodes rooted at users without a
// reachable boss. Linking is done over a prebuilt id map, so broken or cyclic
// data cannot recurse.
func (s *UserService) Hierarchy(ctx context.Context) ([]*ports.HierarchyNode, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*ports.HierarchyNode, len(users))
	for _, u := range users {
		nodes[u.ID] = &ports.HierarchyNode{
			ID:           u.ID,
			Username:     u.Username,
			Role:         u.Role,
			Subordinates: []*ports.HierarchyNode{},
		}
	}

	var roots []*ports.HierarchyNode
	for _, u := range users {
		if u.BossID != nil {
			if parent, ok := nodes[*u.BossID]; ok {
				parent.Subordinates = append(parent.Subordinates, nodes[u.ID])
				continue
			}
		}
		roots = append(roots, nodes[u.ID])
	}

	return roots, nil
}
