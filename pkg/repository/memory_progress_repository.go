package repository

import (
	"context"
	"sync"
	"time"

	"github.com/tastetrail/progression/pkg/domain"
)

// MemoryProgressRepository is an in-memory ProgressRepository for tests and
// local development. Unlike a testify mock it needs no expectation setup and
// honors the same atomicity contract as the Postgres implementation (a
// single mutex serializes all read-modify-write cycles).
type MemoryProgressRepository struct {
	mu   sync.Mutex
	rows map[progressKey]*domain.UserMissionProgress
}

type progressKey struct {
	userID    string
	missionID string
}

// NewMemoryProgressRepository creates an empty in-memory progress repository.
func NewMemoryProgressRepository() *MemoryProgressRepository {
	return &MemoryProgressRepository{
		rows: make(map[progressKey]*domain.UserMissionProgress),
	}
}

func (r *MemoryProgressRepository) ensureLocked(userID, missionID string) *domain.UserMissionProgress {
	key := progressKey{userID, missionID}
	row, ok := r.rows[key]
	if !ok {
		now := time.Now()
		row = &domain.UserMissionProgress{
			UserID:    userID,
			MissionID: missionID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		r.rows[key] = row
	}
	return row
}

func (r *MemoryProgressRepository) apply(userID, missionID string, target int, next func(current int) int) ProgressUpdate {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.ensureLocked(userID, missionID)

	newProgress := next(row.Progress)
	if row.Completed && newProgress < row.Progress {
		newProgress = row.Progress
	}
	if newProgress < 0 {
		newProgress = 0
	}

	justCompleted := !row.Completed && newProgress >= target

	row.Progress = newProgress
	row.UpdatedAt = time.Now()
	if justCompleted {
		row.Completed = true
		now := time.Now()
		row.CompletedAt = &now
	}

	return ProgressUpdate{NewProgress: newProgress, JustCompleted: justCompleted}
}

// IncrementAndCheck atomically adds delta to progress.
func (r *MemoryProgressRepository) IncrementAndCheck(ctx context.Context, userID, missionID string, delta, target int) (ProgressUpdate, error) {
	return r.apply(userID, missionID, target, func(current int) int { return current + delta }), nil
}

// SetAbsolute overwrites progress with newValue.
func (r *MemoryProgressRepository) SetAbsolute(ctx context.Context, userID, missionID string, newValue, target int) (ProgressUpdate, error) {
	return r.apply(userID, missionID, target, func(current int) int { return newValue }), nil
}

// EnsureRow lazily creates a zero-progress row if none exists.
func (r *MemoryProgressRepository) EnsureRow(ctx context.Context, userID, missionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureLocked(userID, missionID)
	return nil
}

// GetProgress retrieves a single user's progress for a mission.
func (r *MemoryProgressRepository) GetProgress(ctx context.Context, userID, missionID string) (*domain.UserMissionProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[progressKey{userID, missionID}]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

// GetForUser retrieves all progress rows for a user.
func (r *MemoryProgressRepository) GetForUser(ctx context.Context, userID string) ([]*domain.UserMissionProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []*domain.UserMissionProgress
	for key, row := range r.rows {
		if key.userID == userID {
			copied := *row
			results = append(results, &copied)
		}
	}
	return results, nil
}

// ResetPeriodic zeroes progress and clears completed for every row of the
// given missions.
func (r *MemoryProgressRepository) ResetPeriodic(ctx context.Context, missionIDs []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make(map[string]bool, len(missionIDs))
	for _, id := range missionIDs {
		ids[id] = true
	}

	var affected int64
	for key, row := range r.rows {
		if !ids[key.missionID] {
			continue
		}
		row.Progress = 0
		row.Completed = false
		row.CompletedAt = nil
		row.UpdatedAt = time.Now()
		affected++
	}
	return affected, nil
}
