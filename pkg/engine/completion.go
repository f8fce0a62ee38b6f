package engine

import (
	"context"

	"github.com/tastetrail/progression/pkg/domain"
)

// XPReasonMissionCompleted is the ledger reason recorded for mission
// completion grants.
const XPReasonMissionCompleted = "mission_completed"

// handleCompletion runs the reward side effects after a progress update
// reported JustCompleted. The atomic counter guarantees this runs at most
// once per completion; the side effects themselves are a separate,
// best-effort step. A crash between the threshold crossing and a grant can
// leave a completed mission without its reward, which is logged at ERROR
// with enough context to replay the grant manually.
func (e *Engine) handleCompletion(ctx context.Context, userID string, mission *domain.Mission) {
	e.logger.Info("Mission completed",
		"user_id", userID,
		"mission_id", mission.ID,
		"mission_name", mission.Name,
		"periodicity", mission.Periodicity,
		"completed_at", e.now(),
	)
	e.notifier.MissionCompleted(ctx, userID, mission)

	if mission.XPReward > 0 {
		_, err := e.leveling.AwardXP(ctx, userID, mission.XPReward, XPReasonMissionCompleted, "mission", mission.ID)
		if err != nil {
			e.logger.Error("Mission completed but XP grant failed",
				"user_id", userID, "mission_id", mission.ID, "xp", mission.XPReward, "error", err)
		}
	}

	if mission.BadgeReward != "" {
		awarded, err := e.badges.Award(ctx, userID, mission.BadgeReward)
		if err != nil {
			e.logger.Error("Mission completed but badge grant failed",
				"user_id", userID, "mission_id", mission.ID, "badge_id", mission.BadgeReward, "error", err)
		} else if awarded {
			e.logger.Info("Badge awarded",
				"user_id", userID, "badge_id", mission.BadgeReward, "source", "mission")
			e.notifier.BadgeAwarded(ctx, userID, mission.BadgeReward)
		}
	}

	if mission.InQuestChain() {
		e.unlockNextQuestStep(ctx, userID, mission)
	}
}

// unlockNextQuestStep lazily creates the progress row for the next step of
// the mission's quest chain, making it eligible for future qualifying
// events. The row creation is idempotent, so replayed completion handling
// never produces a duplicate unlock. A chain with no further step ends
// silently.
func (e *Engine) unlockNextQuestStep(ctx context.Context, userID string, mission *domain.Mission) {
	next := e.cache.NextQuestStep(mission.QuestID, mission.QuestStep)
	if next == nil {
		return
	}

	if err := e.progress.EnsureRow(ctx, userID, next.ID); err != nil {
		e.logger.Error("Failed to unlock next quest step",
			"user_id", userID, "quest_id", mission.QuestID,
			"next_mission_id", next.ID, "error", err)
		return
	}

	e.logger.Info("Quest step unlocked",
		"user_id", userID,
		"quest_id", mission.QuestID,
		"step", next.QuestStep,
		"mission_id", next.ID,
	)
}
