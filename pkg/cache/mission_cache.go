package cache

import "github.com/tastetrail/progression/pkg/domain"

// MissionCache provides O(1) in-memory lookups for the mission/badge catalog.
// The cache is built at application startup from the catalog config file.
// All lookups are read-only and thread-safe.
type MissionCache interface {
	// MissionByID retrieves a mission by its unique ID.
	// Returns nil if the mission does not exist.
	MissionByID(missionID string) *domain.Mission

	// ActiveMissionsByAction retrieves all active missions whose requirement
	// kind reacts to the given action category. Daily, weekly, and narrative
	// missions are all returned; narrative missions are always current.
	ActiveMissionsByAction(action domain.ActionKind) []*domain.Mission

	// MissionsByPeriodicity retrieves all missions with the given
	// periodicity, active or not. Used by the reset scheduler.
	MissionsByPeriodicity(p domain.Periodicity) []*domain.Mission

	// BadgesByAction retrieves all badges whose requirement type reacts to
	// the given action category.
	BadgesByAction(action domain.ActionKind) []*domain.Badge

	// NextQuestStep retrieves the mission at step+1 of the given quest
	// chain. Returns nil if the chain has no further step.
	NextQuestStep(questID string, step int) *domain.Mission

	// AllMissions retrieves every mission in the catalog.
	AllMissions() []*domain.Mission

	// AllBadges retrieves every badge in the catalog.
	AllBadges() []*domain.Badge

	// Reload reloads the cache from the catalog file.
	// Returns an error if the file cannot be read or is invalid.
	Reload() error
}
