package repository

import (
	"context"
	"time"
)

// StubHistoryRepository is a simple canned-count HistoryRepository for
// local development and engine tests. Unlike MockHistoryRepository it needs
// no expectation setup; zero-value fields mean zero counts.
type StubHistoryRepository struct {
	CheckIns       int
	Establishments int
	ZoneCheckIns   map[string]int
	Zones          int
	Reviews        int
	Following      int
	Followers      int
	HelpfulVotes   int

	// Err, when set, is returned by every query.
	Err error
}

func (s *StubHistoryRepository) CheckInCount(ctx context.Context, userID string, since time.Time) (int, error) {
	return s.CheckIns, s.Err
}

func (s *StubHistoryRepository) DistinctEstablishments(ctx context.Context, userID string, since time.Time) (int, error) {
	return s.Establishments, s.Err
}

func (s *StubHistoryRepository) CheckInCountInZone(ctx context.Context, userID, zone string, since time.Time) (int, error) {
	return s.ZoneCheckIns[zone], s.Err
}

func (s *StubHistoryRepository) DistinctZones(ctx context.Context, userID string, since time.Time) (int, error) {
	return s.Zones, s.Err
}

func (s *StubHistoryRepository) ReviewCount(ctx context.Context, userID string, filter ReviewFilter, since time.Time) (int, error) {
	return s.Reviews, s.Err
}

func (s *StubHistoryRepository) FollowingCount(ctx context.Context, userID string) (int, error) {
	return s.Following, s.Err
}

func (s *StubHistoryRepository) FollowerCount(ctx context.Context, userID string) (int, error) {
	return s.Followers, s.Err
}

func (s *StubHistoryRepository) HelpfulVotesReceived(ctx context.Context, userID string) (int, error) {
	return s.HelpfulVotes, s.Err
}
