package evaluator

import (
	"context"
	"fmt"
	"time"

	"github.com/tastetrail/progression/pkg/domain"
	"github.com/tastetrail/progression/pkg/errors"
	"github.com/tastetrail/progression/pkg/repository"
)

// Evaluator computes a user's qualifying count for a mission requirement.
// The output is always the count as of now, never a delta; the caller
// decides whether to apply it as an absolute set (aggregate kinds) or to
// increment by one instead (simple per-event kinds).
type Evaluator struct {
	history repository.HistoryRepository
	windows Windows
}

// New creates an Evaluator backed by the given history reader.
func New(history repository.HistoryRepository, windows Windows) *Evaluator {
	return &Evaluator{history: history, windows: windows}
}

// Windows exposes the evaluator's window resolver.
func (e *Evaluator) Windows() Windows {
	return e.windows
}

// Evaluate recomputes the qualifying count for a mission's requirement over
// its periodicity window. An unknown requirement kind returns a
// configuration error; the caller logs it and skips the mission.
func (e *Evaluator) Evaluate(ctx context.Context, userID string, mission *domain.Mission, now time.Time) (int, error) {
	since := e.windows.ForPeriodicity(mission.Periodicity, now)
	req := mission.Requirement

	switch req.Kind {
	case domain.RequirementCheckInCount:
		if req.Unique {
			return e.history.DistinctEstablishments(ctx, userID, since)
		}
		return e.history.CheckInCount(ctx, userID, since)

	case domain.RequirementCheckInZone:
		return e.history.CheckInCountInZone(ctx, userID, req.Zone, since)

	case domain.RequirementCheckInAllZones:
		return e.history.DistinctZones(ctx, userID, since)

	case domain.RequirementWriteReviews:
		return e.history.ReviewCount(ctx, userID, repository.ReviewFilter{
			MinLength:  req.MinLength,
			WithPhotos: req.WithPhotos,
		}, since)

	case domain.RequirementWriteQualityReview:
		return e.history.ReviewCount(ctx, userID, repository.ReviewFilter{
			MinLength:  req.MinLength,
			WithPhotos: true,
		}, since)

	case domain.RequirementFollowUsers:
		return e.history.FollowingCount(ctx, userID)

	case domain.RequirementGainFollowers:
		return e.history.FollowerCount(ctx, userID)

	default:
		return 0, errors.ErrConfigInvalid(fmt.Sprintf("unknown requirement kind '%s' for mission %s", req.Kind, mission.ID))
	}
}

// BadgeCount recomputes a user's current count for a badge requirement type.
// Badge counts are always all-time. Unimplemented types return ok=false
// rather than erroring, so catalogs can ship badge types ahead of engine
// support.
func (e *Evaluator) BadgeCount(ctx context.Context, userID, requirementType string) (count int, ok bool, err error) {
	switch requirementType {
	case domain.BadgeRequirementReviewCount:
		count, err = e.history.ReviewCount(ctx, userID, repository.ReviewFilter{}, allTime)
	case domain.BadgeRequirementCheckInCount:
		count, err = e.history.CheckInCount(ctx, userID, allTime)
	case domain.BadgeRequirementUniqueZones:
		count, err = e.history.DistinctZones(ctx, userID, allTime)
	case domain.BadgeRequirementFollowerCount:
		count, err = e.history.FollowerCount(ctx, userID)
	case domain.BadgeRequirementHelpfulReceived:
		count, err = e.history.HelpfulVotesReceived(ctx, userID)
	default:
		return 0, false, nil
	}
	return count, true, err
}
