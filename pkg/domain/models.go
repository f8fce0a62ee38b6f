package domain

import "time"

// Periodicity defines how often a mission's progress resets.
type Periodicity string

const (
	// PeriodicityDaily missions reset every local midnight and count
	// qualifying actions since midnight today.
	PeriodicityDaily Periodicity = "daily"

	// PeriodicityWeekly missions reset every Monday 00:00 local time and
	// count qualifying actions since the start of the current week.
	PeriodicityWeekly Periodicity = "weekly"

	// PeriodicityNarrative missions never reset. They count actions across
	// all time and usually belong to a quest chain.
	PeriodicityNarrative Periodicity = "narrative"
)

// IsValid returns true if the periodicity is a valid type.
func (p Periodicity) IsValid() bool {
	switch p {
	case PeriodicityDaily, PeriodicityWeekly, PeriodicityNarrative:
		return true
	default:
		return false
	}
}

// Mission represents a single tracked objective with a requirement and a
// reward. Missions are defined in the catalog config and are immutable
// during normal operation; they are edited only by external admin tooling.
type Mission struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Periodicity Periodicity `json:"periodicity"`
	Requirement Requirement `json:"requirement"`
	XPReward    int         `json:"xp_reward"`
	BadgeReward string      `json:"badge_reward,omitempty"` // Badge ID, empty if none
	QuestID     string      `json:"quest_id,omitempty"`     // Non-empty links the mission into a quest chain
	QuestStep   int         `json:"quest_step,omitempty"`   // 1-based position within the chain
	IsActive    bool        `json:"is_active"`
}

// InQuestChain returns true if the mission belongs to an ordered quest chain.
func (m *Mission) InQuestChain() bool {
	return m.QuestID != "" && m.QuestStep > 0
}

// Badge represents a permanent award evaluated independently of missions,
// on the same action events.
type Badge struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	RequirementType  string `json:"requirement_type"`
	RequirementValue int    `json:"requirement_value"`
}

// Badge requirement types recognized by the badge evaluator. Unrecognized
// types are treated as "not met" rather than errors, so new types can ship
// in the catalog ahead of engine support.
const (
	BadgeRequirementReviewCount     = "review_count"
	BadgeRequirementCheckInCount    = "check_in_count"
	BadgeRequirementUniqueZones     = "unique_zones_visited"
	BadgeRequirementFollowerCount   = "follower_count"
	BadgeRequirementHelpfulReceived = "helpful_votes_received"
)

// UserMissionProgress tracks a user's progress toward completing a specific
// mission. Rows are lazily initialized: created on the first qualifying
// event, or eagerly when a quest chain unlocks the next step.
//
// Invariants: Completed implies Progress reached the requirement count at
// completion time; once Completed, Progress never decreases and no further
// reward side effects fire for this row.
type UserMissionProgress struct {
	UserID      string     `json:"user_id" db:"user_id"`
	MissionID   string     `json:"mission_id" db:"mission_id"`
	Progress    int        `json:"progress" db:"progress"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Percent returns progress toward target as a percentage, capped at 100.
func (p *UserMissionProgress) Percent(target int) float64 {
	if target <= 0 {
		return 0
	}
	pct := float64(p.Progress) / float64(target) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Remaining returns how many qualifying units are still needed, never negative.
func (p *UserMissionProgress) Remaining(target int) int {
	if p.Progress >= target {
		return 0
	}
	return target - p.Progress
}

// UserPoints holds a user's experience totals, one row per user.
// Invariant: CurrentLevel always equals the pure level function of TotalXP
// after any write.
type UserPoints struct {
	UserID       string    `json:"user_id" db:"user_id"`
	TotalXP      int       `json:"total_xp" db:"total_xp"`
	MonthlyXP    int       `json:"monthly_xp" db:"monthly_xp"`
	CurrentLevel int       `json:"current_level" db:"current_level"`
	Streak       int       `json:"streak" db:"streak"`
	BestStreak   int       `json:"best_streak" db:"best_streak"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// XPTransaction is an append-only ledger entry backing a user's TotalXP.
// Entries are never mutated or deleted; the sum of a user's transactions
// reconciles with UserPoints.TotalXP.
type XPTransaction struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Amount     int       `json:"amount" db:"amount"` // Always positive
	Reason     string    `json:"reason" db:"reason"`
	SourceType string    `json:"source_type,omitempty" db:"source_type"`
	SourceID   string    `json:"source_id,omitempty" db:"source_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// UserBadge records a badge owned by a user. The (user_id, badge_id) pair is
// unique, which makes awarding idempotent by construction.
type UserBadge struct {
	UserID    string    `json:"user_id" db:"user_id"`
	BadgeID   string    `json:"badge_id" db:"badge_id"`
	AwardedAt time.Time `json:"awarded_at" db:"awarded_at"`
}
