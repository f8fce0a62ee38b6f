package engine

import (
	"context"
	"log/slog"

	"github.com/tastetrail/progression/pkg/domain"
)

// Notifier receives reward events for downstream delivery (push, activity
// feed, email). Implementations must be fast and must not fail the engine:
// the engine calls them after the reward is already durable and ignores
// nothing they return because they return nothing.
type Notifier interface {
	MissionCompleted(ctx context.Context, userID string, mission *domain.Mission)
	BadgeAwarded(ctx context.Context, userID, badgeID string)
}

// LogNotifier is a Notifier for local development. It logs each event and
// does nothing else.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) MissionCompleted(ctx context.Context, userID string, mission *domain.Mission) {
	n.logger.Info("[LogNotifier] Mission completed notification",
		"user_id", userID, "mission_id", mission.ID, "mission_name", mission.Name)
}

func (n *LogNotifier) BadgeAwarded(ctx context.Context, userID, badgeID string) {
	n.logger.Info("[LogNotifier] Badge awarded notification",
		"user_id", userID, "badge_id", badgeID)
}

// noopNotifier is the default when the host wires no notifier.
type noopNotifier struct{}

func (noopNotifier) MissionCompleted(ctx context.Context, userID string, mission *domain.Mission) {}
func (noopNotifier) BadgeAwarded(ctx context.Context, userID, badgeID string)                     {}
