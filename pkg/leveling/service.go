package leveling

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tastetrail/progression/pkg/domain"
	"github.com/tastetrail/progression/pkg/errors"
	"github.com/tastetrail/progression/pkg/repository"
)

// Service grants XP and maintains user points. XP grants append to the
// ledger first, then update the points row; the ledger is the source of
// truth for reconciliation.
type Service struct {
	points repository.PointsRepository
	logger *slog.Logger
}

// NewService creates a leveling Service.
func NewService(points repository.PointsRepository, logger *slog.Logger) *Service {
	return &Service{points: points, logger: logger}
}

// AwardXP grants amount XP to a user. The amount must be a positive
// integer; zero and negative amounts are rejected with a validation error
// since they indicate a programming error upstream.
//
// Returns the updated points row. If the grant crossed a level boundary a
// level-up event is logged; downstream notification is an external
// collaborator's concern.
func (s *Service) AwardXP(ctx context.Context, userID string, amount int, reason, sourceType, sourceID string) (*domain.UserPoints, error) {
	if userID == "" {
		return nil, errors.ErrValidationFailed("user_id", "cannot be empty")
	}
	if amount <= 0 {
		return nil, errors.ErrValidationFailed("amount", "must be a positive integer")
	}

	tx := &domain.XPTransaction{
		ID:         uuid.NewString(),
		UserID:     userID,
		Amount:     amount,
		Reason:     reason,
		SourceType: sourceType,
		SourceID:   sourceID,
	}
	if err := s.points.AppendTransaction(ctx, tx); err != nil {
		return nil, err
	}

	points, err := s.points.AddXP(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	if CalculateLevel(points.TotalXP-amount) < points.CurrentLevel {
		s.logger.Info("User leveled up",
			"user_id", userID,
			"level", points.CurrentLevel,
			"total_xp", points.TotalXP,
			"next_level_xp", XPForNextLevel(points.CurrentLevel),
		)
	}

	return points, nil
}

// GetUserPoints returns a user's points row. Users who have never earned XP
// get a fresh level-1 row (not persisted).
func (s *Service) GetUserPoints(ctx context.Context, userID string) (*domain.UserPoints, error) {
	points, err := s.points.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if points == nil {
		return &domain.UserPoints{UserID: userID, CurrentLevel: 1}, nil
	}
	return points, nil
}

// ResetMonthlyXP zeroes every user's monthly XP and returns the number of
// affected users. Invoked by an external monthly scheduler.
func (s *Service) ResetMonthlyXP(ctx context.Context) (int64, error) {
	affected, err := s.points.ResetMonthlyXP(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Monthly XP reset", "affected_users", affected)

	return affected, nil
}
