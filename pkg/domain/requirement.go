package domain

// RequirementKind identifies how a mission requirement is evaluated.
// The engine's evaluation logic is fixed per kind; new kinds require engine
// support, not just catalog entries.
type RequirementKind string

const (
	// RequirementCheckInCount counts check-ins within the mission's window.
	// With Unique set, it counts distinct establishments instead.
	RequirementCheckInCount RequirementKind = "check_in_count"

	// RequirementCheckInZone counts check-ins at establishments in a
	// specific zone within the window.
	RequirementCheckInZone RequirementKind = "check_in_zone"

	// RequirementCheckInAllZones counts distinct zones visited across all
	// check-ins within the window.
	RequirementCheckInAllZones RequirementKind = "check_in_all_zones"

	// RequirementWriteReviews counts reviews meeting the optional
	// MinLength/WithPhotos predicates within the window.
	RequirementWriteReviews RequirementKind = "write_reviews"

	// RequirementWriteQualityReview counts reviews meeting both the
	// MinLength and photo predicates within the window.
	RequirementWriteQualityReview RequirementKind = "write_quality_review"

	// RequirementFollowUsers counts users the subject follows.
	RequirementFollowUsers RequirementKind = "follow_users"

	// RequirementGainFollowers counts followers the subject has gained.
	RequirementGainFollowers RequirementKind = "gain_followers"
)

// IsValid returns true if the requirement kind is known to the engine.
func (k RequirementKind) IsValid() bool {
	switch k {
	case RequirementCheckInCount, RequirementCheckInZone, RequirementCheckInAllZones,
		RequirementWriteReviews, RequirementWriteQualityReview,
		RequirementFollowUsers, RequirementGainFollowers:
		return true
	default:
		return false
	}
}

// ProgressMode describes how an evaluated count is applied to the progress
// counter.
type ProgressMode int

const (
	// ModeIncrement applies +1 per qualifying event.
	ModeIncrement ProgressMode = iota

	// ModeAbsolute overwrites progress with the recomputed qualifying count.
	// Used by unique/aggregate kinds to avoid drift from duplicate events.
	ModeAbsolute
)

// Requirement is the condition a user must meet to complete a mission.
// It is a closed tagged variant: Kind selects the evaluation rule and only
// the fields relevant to that kind are set.
type Requirement struct {
	Kind       RequirementKind `json:"kind"`
	Count      int             `json:"count"`
	Unique     bool            `json:"unique,omitempty"`      // check_in_count: count distinct establishments
	Zone       string          `json:"zone,omitempty"`        // check_in_zone: target zone
	MinLength  int             `json:"min_length,omitempty"`  // write_reviews / write_quality_review
	WithPhotos bool            `json:"with_photos,omitempty"` // write_reviews / write_quality_review
}

// Mode returns how evaluated counts for this requirement are applied.
// Simple per-event kinds increment; aggregate kinds recompute and set.
func (r Requirement) Mode() ProgressMode {
	switch r.Kind {
	case RequirementCheckInCount:
		if r.Unique {
			return ModeAbsolute
		}
		return ModeIncrement
	case RequirementCheckInZone:
		return ModeIncrement
	case RequirementCheckInAllZones:
		return ModeAbsolute
	case RequirementWriteReviews, RequirementWriteQualityReview:
		return ModeIncrement
	case RequirementFollowUsers, RequirementGainFollowers:
		return ModeAbsolute
	default:
		return ModeIncrement
	}
}

// ActionKind identifies the category of a domain event delivered to the
// engine's listeners.
type ActionKind string

const (
	ActionCheckIn             ActionKind = "check_in"
	ActionReview              ActionKind = "review"
	ActionHelpfulVoteCast     ActionKind = "helpful_vote_cast"
	ActionFollow              ActionKind = "follow"
	ActionHelpfulVoteReceived ActionKind = "helpful_vote_received"
	ActionPhotoUpload         ActionKind = "photo_upload"
)

// actionsByKind maps each requirement kind to the action categories that can
// advance it. The same table drives mission dispatch and badge evaluation.
var actionsByKind = map[RequirementKind][]ActionKind{
	RequirementCheckInCount:       {ActionCheckIn},
	RequirementCheckInZone:        {ActionCheckIn},
	RequirementCheckInAllZones:    {ActionCheckIn},
	RequirementWriteReviews:       {ActionReview},
	RequirementWriteQualityReview: {ActionReview},
	RequirementFollowUsers:        {ActionFollow},
	RequirementGainFollowers:      {ActionFollow},
}

// ReactsTo returns true if the requirement kind advances on the given action
// category.
func (k RequirementKind) ReactsTo(action ActionKind) bool {
	for _, a := range actionsByKind[k] {
		if a == action {
			return true
		}
	}
	return false
}

// badgeActionsByType maps badge requirement types to the action categories
// that can satisfy them. Unlisted types never match, so unimplemented badge
// types are silently skipped.
var badgeActionsByType = map[string][]ActionKind{
	BadgeRequirementReviewCount:     {ActionReview},
	BadgeRequirementCheckInCount:    {ActionCheckIn},
	BadgeRequirementUniqueZones:     {ActionCheckIn},
	BadgeRequirementFollowerCount:   {ActionFollow},
	BadgeRequirementHelpfulReceived: {ActionHelpfulVoteReceived},
}

// BadgeReactsTo returns true if a badge requirement type advances on the
// given action category.
func BadgeReactsTo(requirementType string, action ActionKind) bool {
	for _, a := range badgeActionsByType[requirementType] {
		if a == action {
			return true
		}
	}
	return false
}
