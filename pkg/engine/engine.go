// Package engine dispatches domain events to the mission and badge
// evaluation pipeline. Listener entry points are fire-and-forget: store
// errors are logged and swallowed so a gamification failure never blocks
// the triggering action.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/tastetrail/progression/pkg/cache"
	"github.com/tastetrail/progression/pkg/domain"
	"github.com/tastetrail/progression/pkg/evaluator"
	"github.com/tastetrail/progression/pkg/leveling"
	"github.com/tastetrail/progression/pkg/repository"
)

// Engine evaluates missions and badges in response to user actions.
type Engine struct {
	cache     cache.MissionCache
	progress  repository.ProgressRepository
	badges    repository.BadgeRepository
	evaluator *evaluator.Evaluator
	leveling  *leveling.Service
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
}

// New creates an Engine. The clock defaults to time.Now and is overridable
// for tests via WithClock.
func New(
	missionCache cache.MissionCache,
	progress repository.ProgressRepository,
	badges repository.BadgeRepository,
	eval *evaluator.Evaluator,
	lvl *leveling.Service,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		cache:     missionCache,
		progress:  progress,
		badges:    badges,
		evaluator: eval,
		leveling:  lvl,
		notifier:  noopNotifier{},
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the engine's clock. Test hook.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// WithNotifier wires a downstream reward notifier. Without one, reward
// events are logged but not delivered anywhere.
func (e *Engine) WithNotifier(n Notifier) *Engine {
	e.notifier = n
	return e
}

// OnCheckIn reacts to a verified check-in. Callers must not depend on its
// outcome; errors are absorbed internally.
func (e *Engine) OnCheckIn(ctx context.Context, event domain.CheckInEvent) {
	if !event.Countable() {
		return
	}
	e.processMissions(ctx, event.UserID, domain.ActionCheckIn, func(req domain.Requirement) bool {
		return evaluator.QualifiesCheckIn(req, event)
	})
	e.evaluateBadges(ctx, event.UserID, domain.ActionCheckIn)
}

// OnReviewCreated reacts to a published review.
func (e *Engine) OnReviewCreated(ctx context.Context, event domain.ReviewEvent) {
	if !event.Countable() {
		return
	}
	e.processMissions(ctx, event.UserID, domain.ActionReview, func(req domain.Requirement) bool {
		return evaluator.QualifiesReview(req, event)
	})
	e.evaluateBadges(ctx, event.UserID, domain.ActionReview)
}

// OnVoteCast reacts to the voter's side of a helpful vote.
func (e *Engine) OnVoteCast(ctx context.Context, event domain.VoteEvent) {
	if !event.Countable() {
		return
	}
	e.processMissions(ctx, event.VoterID, domain.ActionHelpfulVoteCast, func(req domain.Requirement) bool {
		return req.Kind.ReactsTo(domain.ActionHelpfulVoteCast)
	})
	e.evaluateBadges(ctx, event.VoterID, domain.ActionHelpfulVoteCast)
}

// OnHelpfulVoteReceived reacts to the review author's side of a helpful
// vote.
func (e *Engine) OnHelpfulVoteReceived(ctx context.Context, event domain.VoteEvent) {
	if !event.Countable() || event.AuthorID == "" {
		return
	}
	e.processMissions(ctx, event.AuthorID, domain.ActionHelpfulVoteReceived, func(req domain.Requirement) bool {
		return req.Kind.ReactsTo(domain.ActionHelpfulVoteReceived)
	})
	e.evaluateBadges(ctx, event.AuthorID, domain.ActionHelpfulVoteReceived)
}

// OnFollowAction reacts to a follow. Both sides of the edge are evaluated:
// the follower's follow_users missions and the followee's gain_followers
// missions.
func (e *Engine) OnFollowAction(ctx context.Context, event domain.FollowEvent) {
	if !event.Countable() {
		return
	}
	e.processMissions(ctx, event.FollowerID, domain.ActionFollow, func(req domain.Requirement) bool {
		return req.Kind == domain.RequirementFollowUsers
	})
	e.processMissions(ctx, event.FolloweeID, domain.ActionFollow, func(req domain.Requirement) bool {
		return req.Kind == domain.RequirementGainFollowers
	})
	e.evaluateBadges(ctx, event.FolloweeID, domain.ActionFollow)
}

// OnPhotoUploaded reacts to a photo upload.
func (e *Engine) OnPhotoUploaded(ctx context.Context, event domain.PhotoEvent) {
	if !event.Countable() {
		return
	}
	e.processMissions(ctx, event.UserID, domain.ActionPhotoUpload, func(req domain.Requirement) bool {
		return req.Kind.ReactsTo(domain.ActionPhotoUpload)
	})
	e.evaluateBadges(ctx, event.UserID, domain.ActionPhotoUpload)
}

// processMissions walks the active missions relevant to the action, applies
// progress for each one the event qualifies for, and runs completion
// handling when a threshold is first crossed. Failures skip the affected
// mission and let the others proceed.
func (e *Engine) processMissions(ctx context.Context, userID string, action domain.ActionKind, qualifies func(domain.Requirement) bool) {
	missions := e.cache.ActiveMissionsByAction(action)

	// Snapshot progress before applying any updates. A quest step unlocked by
	// a completion in this pass becomes eligible on the next event, never the
	// one that unlocked it.
	current := make(map[string]*domain.UserMissionProgress, len(missions))
	loadFailed := make(map[string]bool)
	for _, mission := range missions {
		if !qualifies(mission.Requirement) {
			continue
		}
		row, err := e.progress.GetProgress(ctx, userID, mission.ID)
		if err != nil {
			e.logger.Error("Failed to load mission progress",
				"user_id", userID, "mission_id", mission.ID, "error", err)
			loadFailed[mission.ID] = true
			continue
		}
		current[mission.ID] = row
	}

	for _, mission := range missions {
		if !qualifies(mission.Requirement) || loadFailed[mission.ID] {
			continue
		}

		row := current[mission.ID]
		if row != nil && row.Completed {
			continue
		}
		// Quest steps beyond the first stay locked until the previous step's
		// completion creates their row.
		if mission.InQuestChain() && mission.QuestStep > 1 && row == nil {
			continue
		}

		update, err := e.applyProgress(ctx, userID, mission)
		if err != nil {
			e.logger.Error("Failed to update mission progress",
				"user_id", userID, "mission_id", mission.ID, "error", err)
			continue
		}

		if update.JustCompleted {
			e.handleCompletion(ctx, userID, mission)
		}
	}
}

// applyProgress applies the event to a single mission's counter: +1 for
// per-event kinds, a recomputed absolute count for aggregate kinds.
func (e *Engine) applyProgress(ctx context.Context, userID string, mission *domain.Mission) (repository.ProgressUpdate, error) {
	target := mission.Requirement.Count

	if mission.Requirement.Mode() == domain.ModeIncrement {
		return e.progress.IncrementAndCheck(ctx, userID, mission.ID, 1, target)
	}

	count, err := e.evaluator.Evaluate(ctx, userID, mission, e.now())
	if err != nil {
		return repository.ProgressUpdate{}, err
	}
	return e.progress.SetAbsolute(ctx, userID, mission.ID, count, target)
}
