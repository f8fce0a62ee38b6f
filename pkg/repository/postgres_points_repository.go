package repository

import (
	"context"
	"database/sql"

	"github.com/tastetrail/progression/pkg/domain"
	"github.com/tastetrail/progression/pkg/errors"
)

// PostgresPointsRepository implements PointsRepository using PostgreSQL.
type PostgresPointsRepository struct {
	db *sql.DB
}

// NewPostgresPointsRepository creates a new PostgreSQL-backed points
// repository.
func NewPostgresPointsRepository(db *sql.DB) *PostgresPointsRepository {
	return &PostgresPointsRepository{db: db}
}

// Get retrieves a user's points row. Returns nil if the user has never
// earned XP.
func (r *PostgresPointsRepository) Get(ctx context.Context, userID string) (*domain.UserPoints, error) {
	var points domain.UserPoints
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, total_xp, monthly_xp, current_level, streak, best_streak, updated_at
		FROM user_points
		WHERE user_id = $1
	`, userID).Scan(
		&points.UserID,
		&points.TotalXP,
		&points.MonthlyXP,
		&points.CurrentLevel,
		&points.Streak,
		&points.BestStreak,
		&points.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, errors.ErrStoreError("get user points", err)
	}

	return &points, nil
}

// AddXP fetches-or-creates the points row and atomically adds amount to both
// total and monthly XP, recomputing the level in the same write.
//
// The level expression mirrors leveling.CalculateLevel (floor(xp/100)+1);
// the two must stay in sync so the UserPoints invariant holds.
func (r *PostgresPointsRepository) AddXP(ctx context.Context, userID string, amount int) (*domain.UserPoints, error) {
	var points domain.UserPoints
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO user_points (
			user_id, total_xp, monthly_xp, current_level, streak, best_streak, updated_at
		) VALUES (
			$1, $2::INT, $2::INT, $2::INT / 100 + 1, 0, 0, NOW()
		)
		ON CONFLICT (user_id) DO UPDATE SET
			total_xp = user_points.total_xp + $2::INT,
			monthly_xp = user_points.monthly_xp + $2::INT,
			current_level = (user_points.total_xp + $2::INT) / 100 + 1,
			updated_at = NOW()
		RETURNING user_id, total_xp, monthly_xp, current_level, streak, best_streak, updated_at
	`, userID, amount).Scan(
		&points.UserID,
		&points.TotalXP,
		&points.MonthlyXP,
		&points.CurrentLevel,
		&points.Streak,
		&points.BestStreak,
		&points.UpdatedAt,
	)

	if err != nil {
		return nil, errors.ErrStoreError("add xp", err)
	}

	return &points, nil
}

// AppendTransaction appends an entry to the XP ledger.
func (r *PostgresPointsRepository) AppendTransaction(ctx context.Context, tx *domain.XPTransaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO xp_transactions (
			id, user_id, amount, reason, source_type, source_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, tx.ID, tx.UserID, tx.Amount, tx.Reason, tx.SourceType, tx.SourceID)

	if err != nil {
		return errors.ErrStoreError("append xp transaction", err)
	}

	return nil
}

// TransactionsForUser returns a user's ledger entries, newest first.
func (r *PostgresPointsRepository) TransactionsForUser(ctx context.Context, userID string, limit int) ([]*domain.XPTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, amount, reason, source_type, source_id, created_at
		FROM xp_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, errors.ErrStoreError("get xp transactions", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*domain.XPTransaction
	for rows.Next() {
		var tx domain.XPTransaction
		err := rows.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Reason, &tx.SourceType, &tx.SourceID, &tx.CreatedAt)
		if err != nil {
			return nil, errors.ErrStoreError("scan xp transaction", err)
		}
		results = append(results, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.ErrStoreError("iterate xp transactions", err)
	}

	return results, nil
}

// ResetMonthlyXP zeroes monthly XP for every user with a non-zero monthly
// total. Returns the number of affected users.
func (r *PostgresPointsRepository) ResetMonthlyXP(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE user_points
		SET monthly_xp = 0,
			updated_at = NOW()
		WHERE monthly_xp <> 0
	`)
	if err != nil {
		return 0, errors.ErrStoreError("reset monthly xp", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.ErrStoreError("check rows affected", err)
	}

	return affected, nil
}

// PostgresBadgeRepository implements BadgeRepository using PostgreSQL.
// The unique (user_id, badge_id) constraint is the concurrency guard:
// duplicate awards collapse into no-ops rather than errors.
type PostgresBadgeRepository struct {
	db *sql.DB
}

// NewPostgresBadgeRepository creates a new PostgreSQL-backed badge
// repository.
func NewPostgresBadgeRepository(db *sql.DB) *PostgresBadgeRepository {
	return &PostgresBadgeRepository{db: db}
}

// Award grants a badge to a user. Returns false with no error if the user
// already owns the badge.
func (r *PostgresBadgeRepository) Award(ctx context.Context, userID, badgeID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO user_badges (user_id, badge_id, awarded_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, badge_id) DO NOTHING
	`, userID, badgeID)
	if err != nil {
		return false, errors.ErrStoreError("award badge", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.ErrStoreError("check rows affected", err)
	}

	return affected == 1, nil
}

// OwnedBadgeIDs returns the IDs of badges the user already owns.
func (r *PostgresBadgeRepository) OwnedBadgeIDs(ctx context.Context, userID string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT badge_id
		FROM user_badges
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, errors.ErrStoreError("get owned badges", err)
	}
	defer func() { _ = rows.Close() }()

	owned := make(map[string]bool)
	for rows.Next() {
		var badgeID string
		if err := rows.Scan(&badgeID); err != nil {
			return nil, errors.ErrStoreError("scan owned badge", err)
		}
		owned[badgeID] = true
	}

	if err := rows.Err(); err != nil {
		return nil, errors.ErrStoreError("iterate owned badges", err)
	}

	return owned, nil
}
