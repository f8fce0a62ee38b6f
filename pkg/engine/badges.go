package engine

import (
	"context"

	"github.com/tastetrail/progression/pkg/domain"
)

// evaluateBadges runs the badge pass for an action: every badge the user
// does not yet own and whose requirement type reacts to the action gets its
// count recomputed; meeting the threshold awards it. Awarding is idempotent,
// so a concurrent duplicate evaluation collapses into a no-op.
func (e *Engine) evaluateBadges(ctx context.Context, userID string, action domain.ActionKind) {
	candidates := e.cache.BadgesByAction(action)
	if len(candidates) == 0 {
		return
	}

	owned, err := e.badges.OwnedBadgeIDs(ctx, userID)
	if err != nil {
		e.logger.Error("Failed to load owned badges", "user_id", userID, "error", err)
		return
	}

	for _, badge := range candidates {
		if owned[badge.ID] {
			continue
		}

		count, ok, err := e.evaluator.BadgeCount(ctx, userID, badge.RequirementType)
		if err != nil {
			e.logger.Error("Failed to evaluate badge",
				"user_id", userID, "badge_id", badge.ID, "error", err)
			continue
		}
		if !ok || count < badge.RequirementValue {
			continue
		}

		awarded, err := e.badges.Award(ctx, userID, badge.ID)
		if err != nil {
			e.logger.Error("Failed to award badge",
				"user_id", userID, "badge_id", badge.ID, "error", err)
			continue
		}
		if awarded {
			e.logger.Info("Badge awarded",
				"user_id", userID, "badge_id", badge.ID, "source", "badge_evaluator")
			e.notifier.BadgeAwarded(ctx, userID, badge.ID)
		}
	}
}
