package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tastetrail/progression/pkg/domain"
)

// Validator validates catalog files. It ensures all business rules are met
// before the engine starts.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate performs comprehensive validation of the catalog.
// It checks for:
// - At least one mission exists
// - All mission and badge IDs are unique
// - All requirements carry the fields their kind needs
// - Badge rewards reference badges defined in the catalog
// - Quest chains are narrative-only with contiguous steps starting at 1
//
// Returns an error describing the first validation failure encountered.
func (v *Validator) Validate(catalog *Catalog) error {
	if len(catalog.Missions) == 0 {
		return errors.New("catalog must have at least one mission")
	}

	badgeIDs := make(map[string]bool)
	for _, badge := range catalog.Badges {
		if err := v.validateBadge(badge); err != nil {
			return fmt.Errorf("invalid badge '%s': %w", badge.ID, err)
		}
		if badgeIDs[badge.ID] {
			return fmt.Errorf("duplicate badge ID: %s", badge.ID)
		}
		badgeIDs[badge.ID] = true
	}

	missionIDs := make(map[string]bool)
	chains := make(map[string][]int) // quest_id -> steps

	for _, mission := range catalog.Missions {
		if err := v.validateMission(mission); err != nil {
			return fmt.Errorf("invalid mission '%s': %w", mission.ID, err)
		}

		if missionIDs[mission.ID] {
			return fmt.Errorf("duplicate mission ID: %s", mission.ID)
		}
		missionIDs[mission.ID] = true

		if mission.BadgeReward != "" && !badgeIDs[mission.BadgeReward] {
			return fmt.Errorf("mission '%s' references unknown badge: %s", mission.ID, mission.BadgeReward)
		}

		if mission.InQuestChain() {
			if mission.Periodicity != domain.PeriodicityNarrative {
				return fmt.Errorf("mission '%s' is in quest chain '%s' but is not narrative", mission.ID, mission.QuestID)
			}
			chains[mission.QuestID] = append(chains[mission.QuestID], mission.QuestStep)
		}
	}

	// Quest chain steps must be contiguous starting at 1 so step+1 lookups
	// always land on a real mission until the chain ends.
	for questID, steps := range chains {
		sort.Ints(steps)
		for i, step := range steps {
			if step != i+1 {
				return fmt.Errorf("quest chain '%s' has non-contiguous steps: expected step %d, found %d", questID, i+1, step)
			}
		}
	}

	return nil
}

// validateMission validates a single mission.
func (v *Validator) validateMission(mission *domain.Mission) error {
	if mission.ID == "" {
		return errors.New("mission ID cannot be empty")
	}
	if mission.Name == "" {
		return errors.New("mission name cannot be empty")
	}
	if !mission.Periodicity.IsValid() {
		return fmt.Errorf("invalid periodicity '%s' (must be 'daily', 'weekly', or 'narrative')", mission.Periodicity)
	}
	if mission.XPReward < 0 {
		return errors.New("xp_reward cannot be negative")
	}
	if mission.QuestID != "" && mission.QuestStep <= 0 {
		return errors.New("quest_step must be positive when quest_id is set")
	}
	if mission.QuestID == "" && mission.QuestStep > 0 {
		return errors.New("quest_step set without quest_id")
	}
	return v.validateRequirement(mission.Requirement)
}

// validateRequirement validates the tagged requirement variant.
func (v *Validator) validateRequirement(req domain.Requirement) error {
	if !req.Kind.IsValid() {
		return fmt.Errorf("unknown requirement kind '%s'", req.Kind)
	}
	if req.Count <= 0 {
		return errors.New("requirement count must be positive")
	}

	switch req.Kind {
	case domain.RequirementCheckInZone:
		if req.Zone == "" {
			return errors.New("check_in_zone requires a zone")
		}
	case domain.RequirementWriteQualityReview:
		if req.MinLength <= 0 {
			return errors.New("write_quality_review requires a positive min_length")
		}
		if !req.WithPhotos {
			return errors.New("write_quality_review requires with_photos")
		}
	case domain.RequirementWriteReviews:
		if req.MinLength < 0 {
			return errors.New("min_length cannot be negative")
		}
	}

	return nil
}

// validateBadge validates a single badge.
func (v *Validator) validateBadge(badge *domain.Badge) error {
	if badge.ID == "" {
		return errors.New("badge ID cannot be empty")
	}
	if badge.Name == "" {
		return errors.New("badge name cannot be empty")
	}
	if badge.RequirementType == "" {
		return errors.New("requirement_type cannot be empty")
	}
	if badge.RequirementValue <= 0 {
		return errors.New("requirement_value must be positive")
	}
	return nil
}
