package repository

import (
	"context"
	"time"
)

// ReviewFilter narrows review counts by optional length/photo predicates.
// Zero values mean "no constraint".
type ReviewFilter struct {
	MinLength  int
	WithPhotos bool
}

// HistoryRepository reads a user's historical action counts. The engine
// never writes history; check-ins, reviews, votes, and follows are recorded
// upstream by the host system.
//
// All windowed queries take a since time; the zero time means "all time"
// (narrative missions have no window).
type HistoryRepository interface {
	// CheckInCount returns the number of verified check-ins since the given
	// time.
	CheckInCount(ctx context.Context, userID string, since time.Time) (int, error)

	// DistinctEstablishments returns the number of distinct establishments
	// the user checked in at since the given time.
	DistinctEstablishments(ctx context.Context, userID string, since time.Time) (int, error)

	// CheckInCountInZone returns the number of check-ins at establishments
	// in the given zone since the given time.
	CheckInCountInZone(ctx context.Context, userID, zone string, since time.Time) (int, error)

	// DistinctZones returns the number of distinct zones visited across all
	// check-ins since the given time.
	DistinctZones(ctx context.Context, userID string, since time.Time) (int, error)

	// ReviewCount returns the number of reviews matching the filter since
	// the given time.
	ReviewCount(ctx context.Context, userID string, filter ReviewFilter, since time.Time) (int, error)

	// FollowingCount returns how many users the subject currently follows.
	FollowingCount(ctx context.Context, userID string) (int, error)

	// FollowerCount returns how many followers the subject currently has.
	FollowerCount(ctx context.Context, userID string) (int, error)

	// HelpfulVotesReceived returns how many helpful votes the subject's
	// reviews have received.
	HelpfulVotesReceived(ctx context.Context, userID string) (int, error)
}
