package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq" // PostgreSQL driver and array support

	"github.com/tastetrail/progression/pkg/domain"
	"github.com/tastetrail/progression/pkg/errors"
)

// PostgresProgressRepository implements ProgressRepository using PostgreSQL.
//
// Atomicity: both counter operations run inside a transaction that takes a
// row-level lock (SELECT ... FOR UPDATE) before the read-modify-write, so
// concurrent qualifying events for the same (user, mission) serialize and
// the completed flag flips exactly once.
type PostgresProgressRepository struct {
	db *sql.DB
}

// NewPostgresProgressRepository creates a new PostgreSQL-backed progress
// repository.
func NewPostgresProgressRepository(db *sql.DB) *PostgresProgressRepository {
	return &PostgresProgressRepository{db: db}
}

const insertRowIfAbsent = `
	INSERT INTO user_mission_progress (
		user_id, mission_id, progress, completed, created_at, updated_at
	) VALUES ($1, $2, 0, false, NOW(), NOW())
	ON CONFLICT (user_id, mission_id) DO NOTHING
`

// IncrementAndCheck atomically adds delta to progress and flips completed
// exactly once when the threshold is first crossed.
func (r *PostgresProgressRepository) IncrementAndCheck(ctx context.Context, userID, missionID string, delta, target int) (ProgressUpdate, error) {
	return r.applyLocked(ctx, userID, missionID, target, func(current int) int {
		return current + delta
	})
}

// SetAbsolute overwrites progress with newValue, with the same completion
// semantics as IncrementAndCheck. A completed row's progress never decreases.
func (r *PostgresProgressRepository) SetAbsolute(ctx context.Context, userID, missionID string, newValue, target int) (ProgressUpdate, error) {
	return r.applyLocked(ctx, userID, missionID, target, func(current int) int {
		return newValue
	})
}

// applyLocked runs the lazy-insert + lock + read-modify-write cycle shared
// by both counter operations.
func (r *PostgresProgressRepository) applyLocked(ctx context.Context, userID, missionID string, target int, next func(current int) int) (ProgressUpdate, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return ProgressUpdate{}, errors.ErrStoreError("begin progress transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, insertRowIfAbsent, userID, missionID); err != nil {
		return ProgressUpdate{}, errors.ErrStoreError("ensure progress row", err)
	}

	var (
		progress  int
		completed bool
	)
	err = tx.QueryRowContext(ctx, `
		SELECT progress, completed
		FROM user_mission_progress
		WHERE user_id = $1 AND mission_id = $2
		FOR UPDATE
	`, userID, missionID).Scan(&progress, &completed)
	if err != nil {
		return ProgressUpdate{}, errors.ErrStoreError("lock progress row", err)
	}

	newProgress := next(progress)
	if completed && newProgress < progress {
		// Completed rows never lose progress.
		newProgress = progress
	}
	if newProgress < 0 {
		newProgress = 0
	}

	justCompleted := !completed && newProgress >= target
	nowCompleted := completed || justCompleted

	_, err = tx.ExecContext(ctx, `
		UPDATE user_mission_progress
		SET progress = $3,
			completed = $4,
			completed_at = CASE WHEN $5 THEN NOW() ELSE completed_at END,
			updated_at = NOW()
		WHERE user_id = $1 AND mission_id = $2
	`, userID, missionID, newProgress, nowCompleted, justCompleted)
	if err != nil {
		return ProgressUpdate{}, errors.ErrStoreError("write progress row", err)
	}

	if err := tx.Commit(); err != nil {
		return ProgressUpdate{}, errors.ErrStoreError("commit progress transaction", err)
	}

	return ProgressUpdate{NewProgress: newProgress, JustCompleted: justCompleted}, nil
}

// EnsureRow lazily creates a zero-progress row if none exists.
func (r *PostgresProgressRepository) EnsureRow(ctx context.Context, userID, missionID string) error {
	if _, err := r.db.ExecContext(ctx, insertRowIfAbsent, userID, missionID); err != nil {
		return errors.ErrStoreError("ensure progress row", err)
	}
	return nil
}

// GetProgress retrieves a single user's progress for a mission.
// Returns nil if no progress row exists yet.
func (r *PostgresProgressRepository) GetProgress(ctx context.Context, userID, missionID string) (*domain.UserMissionProgress, error) {
	var progress domain.UserMissionProgress
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, mission_id, progress, completed, completed_at, created_at, updated_at
		FROM user_mission_progress
		WHERE user_id = $1 AND mission_id = $2
	`, userID, missionID).Scan(
		&progress.UserID,
		&progress.MissionID,
		&progress.Progress,
		&progress.Completed,
		&progress.CompletedAt,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // No progress row exists (lazy initialization)
	}

	if err != nil {
		return nil, errors.ErrStoreError("get progress", err)
	}

	return &progress, nil
}

// GetForUser retrieves all progress rows for a user.
func (r *PostgresProgressRepository) GetForUser(ctx context.Context, userID string) ([]*domain.UserMissionProgress, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, mission_id, progress, completed, completed_at, created_at, updated_at
		FROM user_mission_progress
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, errors.ErrStoreError("get user progress", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*domain.UserMissionProgress
	for rows.Next() {
		var progress domain.UserMissionProgress
		err := rows.Scan(
			&progress.UserID,
			&progress.MissionID,
			&progress.Progress,
			&progress.Completed,
			&progress.CompletedAt,
			&progress.CreatedAt,
			&progress.UpdatedAt,
		)
		if err != nil {
			return nil, errors.ErrStoreError("scan progress row", err)
		}
		results = append(results, &progress)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.ErrStoreError("iterate progress rows", err)
	}

	return results, nil
}

// ResetPeriodic zeroes progress and clears completed for every row of the
// given missions. Rows of missions outside the list are never touched.
func (r *PostgresProgressRepository) ResetPeriodic(ctx context.Context, missionIDs []string) (int64, error) {
	if len(missionIDs) == 0 {
		return 0, nil
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE user_mission_progress
		SET progress = 0,
			completed = false,
			completed_at = NULL,
			updated_at = NOW()
		WHERE mission_id = ANY($1)
	`, pq.Array(missionIDs))
	if err != nil {
		return 0, errors.ErrStoreError("reset periodic progress", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.ErrStoreError("check rows affected", err)
	}

	return affected, nil
}
