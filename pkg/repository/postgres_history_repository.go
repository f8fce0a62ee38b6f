package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tastetrail/progression/pkg/errors"
)

// PostgresHistoryRepository implements HistoryRepository against the host
// system's check-in/review/follow tables. The engine only reads these; the
// host records the actions themselves.
//
// Windowed queries compare against the since parameter directly; callers
// pass the zero time for all-time counts, which predates every row.
type PostgresHistoryRepository struct {
	db *sql.DB
}

// NewPostgresHistoryRepository creates a new PostgreSQL-backed history
// repository.
func NewPostgresHistoryRepository(db *sql.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

func (r *PostgresHistoryRepository) count(ctx context.Context, operation, query string, args ...interface{}) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, errors.ErrStoreError(operation, err)
	}
	return n, nil
}

// CheckInCount returns the number of verified check-ins since the given time.
func (r *PostgresHistoryRepository) CheckInCount(ctx context.Context, userID string, since time.Time) (int, error) {
	return r.count(ctx, "count check-ins", `
		SELECT COUNT(*)
		FROM check_ins
		WHERE user_id = $1 AND verified = true AND created_at >= $2
	`, userID, since)
}

// DistinctEstablishments returns the number of distinct establishments the
// user checked in at since the given time.
func (r *PostgresHistoryRepository) DistinctEstablishments(ctx context.Context, userID string, since time.Time) (int, error) {
	return r.count(ctx, "count distinct establishments", `
		SELECT COUNT(DISTINCT establishment_id)
		FROM check_ins
		WHERE user_id = $1 AND verified = true AND created_at >= $2
	`, userID, since)
}

// CheckInCountInZone returns the number of check-ins at establishments in
// the given zone since the given time.
func (r *PostgresHistoryRepository) CheckInCountInZone(ctx context.Context, userID, zone string, since time.Time) (int, error) {
	return r.count(ctx, "count zone check-ins", `
		SELECT COUNT(*)
		FROM check_ins c
		JOIN establishments e ON e.id = c.establishment_id
		WHERE c.user_id = $1 AND c.verified = true AND e.zone = $2 AND c.created_at >= $3
	`, userID, zone, since)
}

// DistinctZones returns the number of distinct zones visited across all
// check-ins since the given time.
func (r *PostgresHistoryRepository) DistinctZones(ctx context.Context, userID string, since time.Time) (int, error) {
	return r.count(ctx, "count distinct zones", `
		SELECT COUNT(DISTINCT e.zone)
		FROM check_ins c
		JOIN establishments e ON e.id = c.establishment_id
		WHERE c.user_id = $1 AND c.verified = true AND c.created_at >= $2
	`, userID, since)
}

// ReviewCount returns the number of reviews matching the filter since the
// given time.
func (r *PostgresHistoryRepository) ReviewCount(ctx context.Context, userID string, filter ReviewFilter, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reviews
		WHERE user_id = $1 AND created_at >= $2 AND LENGTH(body) >= $3
	`
	if filter.WithPhotos {
		query += " AND photo_count > 0"
	}
	return r.count(ctx, "count reviews", query, userID, since, filter.MinLength)
}

// FollowingCount returns how many users the subject currently follows.
func (r *PostgresHistoryRepository) FollowingCount(ctx context.Context, userID string) (int, error) {
	return r.count(ctx, "count following", `
		SELECT COUNT(*)
		FROM follows
		WHERE follower_id = $1
	`, userID)
}

// FollowerCount returns how many followers the subject currently has.
func (r *PostgresHistoryRepository) FollowerCount(ctx context.Context, userID string) (int, error) {
	return r.count(ctx, "count followers", `
		SELECT COUNT(*)
		FROM follows
		WHERE followee_id = $1
	`, userID)
}

// HelpfulVotesReceived returns how many helpful votes the subject's reviews
// have received.
func (r *PostgresHistoryRepository) HelpfulVotesReceived(ctx context.Context, userID string) (int, error) {
	return r.count(ctx, "count helpful votes received", `
		SELECT COUNT(*)
		FROM review_votes v
		JOIN reviews rv ON rv.id = v.review_id
		WHERE rv.user_id = $1 AND v.helpful = true
	`, userID)
}
