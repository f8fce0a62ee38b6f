package repository

import (
	"context"

	"github.com/tastetrail/progression/pkg/domain"
)

// ProgressUpdate reports the outcome of an atomic progress operation.
type ProgressUpdate struct {
	NewProgress int

	// JustCompleted is true only for the caller whose update caused the
	// completed threshold to be crossed for the first time. Concurrent
	// duplicate crossings never both observe true.
	JustCompleted bool
}

// ProgressRepository manages per-(user, mission) progress counters.
//
// IncrementAndCheck and SetAbsolute must be computed atomically against the
// backing store: a single conditional read-modify-write so two simultaneous
// qualifying events for the same user/mission never both fire completion
// side effects. Both are safe to call on a row that does not yet exist
// (lazy creation with progress initialized to 0 before applying the
// delta/set).
type ProgressRepository interface {
	// IncrementAndCheck atomically adds delta to progress, compares against
	// target, flips completed exactly once when the threshold is first
	// crossed, and reports JustCompleted only to the caller that caused the
	// crossing. Progress on an already-completed row keeps accumulating but
	// never re-fires completion.
	IncrementAndCheck(ctx context.Context, userID, missionID string, delta, target int) (ProgressUpdate, error)

	// SetAbsolute overwrites progress with newValue, with the same
	// completion semantics as IncrementAndCheck. Progress on an
	// already-completed row never decreases.
	SetAbsolute(ctx context.Context, userID, missionID string, newValue, target int) (ProgressUpdate, error)

	// EnsureRow lazily creates a zero-progress row if none exists. Used by
	// quest-chain unlocks; an existing row is left untouched.
	EnsureRow(ctx context.Context, userID, missionID string) error

	// GetProgress retrieves a single user's progress for a mission.
	// Returns nil if no progress row exists yet (lazy initialization).
	GetProgress(ctx context.Context, userID, missionID string) (*domain.UserMissionProgress, error)

	// GetForUser retrieves all progress rows for a user.
	GetForUser(ctx context.Context, userID string) ([]*domain.UserMissionProgress, error)

	// ResetPeriodic zeroes progress and clears completed for every row of
	// the given missions. Returns the number of rows reset. Rows of
	// missions outside the list are never touched.
	ResetPeriodic(ctx context.Context, missionIDs []string) (int64, error)
}
