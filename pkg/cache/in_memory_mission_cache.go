package cache

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/tastetrail/progression/pkg/config"
	"github.com/tastetrail/progression/pkg/domain"
)

// InMemoryMissionCache provides O(1) in-memory lookups for the catalog.
// All indexes are built at startup and provide thread-safe read access.
// The cache is immutable after construction except via Reload.
type InMemoryMissionCache struct {
	missionsByID     map[string]*domain.Mission
	missionsByAction map[domain.ActionKind][]*domain.Mission
	missionsByPeriod map[domain.Periodicity][]*domain.Mission
	badgesByAction   map[domain.ActionKind][]*domain.Badge
	questSteps       map[string]*domain.Mission // "quest_id/step" -> Mission
	missions         []*domain.Mission
	badges           []*domain.Badge
	catalogPath      string
	mu               sync.RWMutex
	logger           *slog.Logger
}

// allActions enumerates every action category for index building.
var allActions = []domain.ActionKind{
	domain.ActionCheckIn,
	domain.ActionReview,
	domain.ActionHelpfulVoteCast,
	domain.ActionFollow,
	domain.ActionHelpfulVoteReceived,
	domain.ActionPhotoUpload,
}

// NewInMemoryMissionCache creates a new cache from the provided catalog.
// The cache is immediately built and ready for lookups.
func NewInMemoryMissionCache(catalog *config.Catalog, catalogPath string, logger *slog.Logger) *InMemoryMissionCache {
	cache := &InMemoryMissionCache{
		catalogPath: catalogPath,
		logger:      logger,
	}

	cache.buildCache(catalog)

	return cache
}

// buildCache constructs all cache indexes from the catalog.
// It replaces all existing cache data.
func (c *InMemoryMissionCache) buildCache(catalog *config.Catalog) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.missionsByID = make(map[string]*domain.Mission)
	c.missionsByAction = make(map[domain.ActionKind][]*domain.Mission)
	c.missionsByPeriod = make(map[domain.Periodicity][]*domain.Mission)
	c.badgesByAction = make(map[domain.ActionKind][]*domain.Badge)
	c.questSteps = make(map[string]*domain.Mission)
	c.missions = make([]*domain.Mission, 0, len(catalog.Missions))
	c.badges = make([]*domain.Badge, 0, len(catalog.Badges))

	for _, mission := range catalog.Missions {
		c.missionsByID[mission.ID] = mission
		c.missions = append(c.missions, mission)
		c.missionsByPeriod[mission.Periodicity] = append(c.missionsByPeriod[mission.Periodicity], mission)

		for _, action := range allActions {
			if mission.Requirement.Kind.ReactsTo(action) {
				c.missionsByAction[action] = append(c.missionsByAction[action], mission)
			}
		}

		if mission.InQuestChain() {
			c.questSteps[questKey(mission.QuestID, mission.QuestStep)] = mission
		}
	}

	for _, badge := range catalog.Badges {
		c.badges = append(c.badges, badge)
		for _, action := range allActions {
			if domain.BadgeReactsTo(badge.RequirementType, action) {
				c.badgesByAction[action] = append(c.badgesByAction[action], badge)
			}
		}
	}

	c.logger.Info("Mission cache built successfully",
		"missions", len(c.missions),
		"badges", len(c.badges),
		"quest_steps", len(c.questSteps),
	)
}

func questKey(questID string, step int) string {
	return fmt.Sprintf("%s/%d", questID, step)
}

// MissionByID retrieves a mission by its unique ID.
// Returns nil if the mission does not exist.
func (c *InMemoryMissionCache) MissionByID(missionID string) *domain.Mission {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.missionsByID[missionID]
}

// ActiveMissionsByAction retrieves all active missions whose requirement
// kind reacts to the given action category.
func (c *InMemoryMissionCache) ActiveMissionsByAction(action domain.ActionKind) []*domain.Mission {
	c.mu.RLock()
	defer c.mu.RUnlock()

	candidates := c.missionsByAction[action]
	active := make([]*domain.Mission, 0, len(candidates))
	for _, mission := range candidates {
		if mission.IsActive {
			active = append(active, mission)
		}
	}
	return active
}

// MissionsByPeriodicity retrieves all missions with the given periodicity.
func (c *InMemoryMissionCache) MissionsByPeriodicity(p domain.Periodicity) []*domain.Mission {
	c.mu.RLock()
	defer c.mu.RUnlock()

	missions := c.missionsByPeriod[p]
	if missions == nil {
		return []*domain.Mission{}
	}
	return missions
}

// BadgesByAction retrieves all badges whose requirement type reacts to the
// given action category.
func (c *InMemoryMissionCache) BadgesByAction(action domain.ActionKind) []*domain.Badge {
	c.mu.RLock()
	defer c.mu.RUnlock()

	badges := c.badgesByAction[action]
	if badges == nil {
		return []*domain.Badge{}
	}
	return badges
}

// NextQuestStep retrieves the mission at step+1 of the given quest chain.
// Returns nil if the chain has no further step.
func (c *InMemoryMissionCache) NextQuestStep(questID string, step int) *domain.Mission {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.questSteps[questKey(questID, step+1)]
}

// AllMissions retrieves every mission in the catalog.
func (c *InMemoryMissionCache) AllMissions() []*domain.Mission {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.missions
}

// AllBadges retrieves every badge in the catalog.
func (c *InMemoryMissionCache) AllBadges() []*domain.Badge {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.badges
}

// Reload reloads the cache from the catalog file.
func (c *InMemoryMissionCache) Reload() error {
	loader := config.NewLoader(c.catalogPath, c.logger)
	catalog, err := loader.Load()
	if err != nil {
		return err
	}

	c.buildCache(catalog)

	c.logger.Info("Mission cache reloaded successfully")

	return nil
}
