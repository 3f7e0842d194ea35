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

// HierarchyEngine implements the boss-forest walks and the reassignment
// mutation. All multi-record writes run inside a store transaction.
type HierarchyEngine struct {
	repo ports.UserRepository
	tx   ports.TxRunner
	log  zerolog.Logger
}

func NewHierarchyEngine(repo ports.UserRepository, tx ports.TxRunner, log zerolog.Logger) *HierarchyEngine {
	return &HierarchyEngine{repo: repo, tx: tx, log: log}
}

// IsAncestorOf walks userID's boss chain toward the root, reporting whether
// candidateBossID appears on it. A user counts as its own ancestor. The walk
// tracks visited ids; revisiting one means the forest invariant is broken.
func (e *HierarchyEngine) IsAncestorOf(ctx context.Context, candidateBossID, userID string) (bool, error) {
	if candidateBossID == userID {
		return true, nil
	}

	user, err := e.repo.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}

	visited := map[string]struct{}{user.ID: {}}
	current := user.BossID
	for current != nil {
		if *current == candidateBossID {
			return true, nil
		}
		if _, seen := visited[*current]; seen {
			metrics.CycleDetectedTotal.Inc()
			e.log.Error().Str("user_id", userID).Str("revisited_id", *current).Msg("boss chain revisits a node")
			return false, domain.ErrCycleDetected
		}
		visited[*current] = struct{}{}

		boss, err := e.repo.FindByID(ctx, *current)
		if err != nil {
			// A dangling boss reference terminates the chain like a root.
			if errors.Is(err, domain.ErrUserNotFound) {
				return false, nil
			}
			return false, err
		}
		current = boss.BossID
	}

	return false, nil
}

// FindAllSubordinates collects everyone transitively below bossID using an
// explicit worklist, level by level. The visited set turns degenerate data
// into ErrCycleDetected instead of a hang.
func (e *HierarchyEngine) FindAllSubordinates(ctx context.Context, bossID string) ([]*domain.User, error) {
	start := time.Now()

	visited := map[string]struct{}{bossID: {}}
	var result []*domain.User
	queue := []string{bossID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		direct, err := e.repo.FindByBossID(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, sub := range direct {
			if _, seen := visited[sub.ID]; seen {
				metrics.CycleDetectedTotal.Inc()
				e.log.Error().Str("boss_id", bossID).Str("revisited_id", sub.ID).Msg("subtree walk revisits a node")
				return nil, domain.ErrCycleDetected
			}
			visited[sub.ID] = struct{}{}
			result = append(result, sub)
			queue = append(queue, sub.ID)
		}
	}

	metrics.SubtreeFetchDuration.Observe(time.Since(start).Seconds())
	return result, nil
}

// ChangeBoss reassigns userID under newBossID. The cycle check, the boss
// pointer update, the subordinate-list maintenance on both bosses and the
// derived-role transitions commit atomically or not at all.
func (e *HierarchyEngine) ChangeBoss(ctx context.Context, newBossID, userID string) error {
	if newBossID == userID {
		return domain.ErrSelfBoss
	}

	return e.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := e.repo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.Role == domain.RoleAdministrator {
			return domain.ErrAdminBoss
		}

		newBoss, err := e.repo.FindByID(ctx, newBossID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return domain.ErrBossNotFound
			}
			return err
		}

		// Reassigning under a descendant would close a loop.
		descendant, err := e.IsAncestorOf(ctx, userID, newBossID)
		if err != nil {
			return err
		}
		if descendant {
			return domain.ErrInvalidHierarchy
		}

		oldBossID := user.BossID
		if oldBossID != nil && *oldBossID == newBossID {
			// Already reporting to newBossID; nothing to change.
			return nil
		}

		user.BossID = &newBoss.ID
		if err := e.repo.Update(ctx, user); err != nil {
			return err
		}

		if !newBoss.HasSubordinate(user.ID) {
			newBoss.Subordinates = append(newBoss.Subordinates, user.ID)
		}
		newBoss.ApplyDerivedRole()
		if err := e.repo.Update(ctx, newBoss); err != nil {
			return err
		}

		if oldBossID != nil {
			oldBoss, err := e.repo.FindByID(ctx, *oldBossID)
			if err != nil {
				return err
			}
			oldBoss.RemoveSubordinate(user.ID)
			oldBoss.ApplyDerivedRole()
			if err := e.repo.Update(ctx, oldBoss); err != nil {
				return err
			}
		}

		e.log.Info().
			Str("user_id", user.ID).
			Str("new_boss_id", newBoss.ID).
			Msg("boss reassigned")
		return nil
	})
}
