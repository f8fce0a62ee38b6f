package evaluator

import (
	"time"

	"github.com/tastetrail/progression/pkg/domain"
)

// allTime is the zero time, predating all recorded history.
var allTime = time.Time{}

// QualifiesCheckIn reports whether a check-in event can advance the given
// requirement. For aggregate kinds any check-in triggers a recompute; for
// per-event kinds the event itself must match the requirement's predicate.
func QualifiesCheckIn(req domain.Requirement, e domain.CheckInEvent) bool {
	switch req.Kind {
	case domain.RequirementCheckInCount, domain.RequirementCheckInAllZones:
		return true
	case domain.RequirementCheckInZone:
		return e.Zone == req.Zone
	default:
		return false
	}
}

// QualifiesReview reports whether a review event can advance the given
// requirement.
func QualifiesReview(req domain.Requirement, e domain.ReviewEvent) bool {
	switch req.Kind {
	case domain.RequirementWriteReviews:
		if req.MinLength > 0 && e.Length < req.MinLength {
			return false
		}
		if req.WithPhotos && !e.HasPhoto {
			return false
		}
		return true
	case domain.RequirementWriteQualityReview:
		return e.Length >= req.MinLength && e.HasPhoto
	default:
		return false
	}
}

// QualifiesFollow reports whether a follow event can advance the given
// requirement. Follow kinds are aggregate recomputes, so any counted follow
// triggers them.
func QualifiesFollow(req domain.Requirement, e domain.FollowEvent) bool {
	switch req.Kind {
	case domain.RequirementFollowUsers, domain.RequirementGainFollowers:
		return true
	default:
		return false
	}
}
