package repository

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockHistoryRepository is a testify mock for HistoryRepository. Use it in
// tests that need assertions on which history queries ran; for plain
// canned counts, StubHistoryRepository is less setup.
type MockHistoryRepository struct {
	mock.Mock
}

// NewMockHistoryRepository creates a new history repository mock.
func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{}
}

func (m *MockHistoryRepository) CheckInCount(ctx context.Context, userID string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockHistoryRepository) DistinctEstablishments(ctx context.Context, userID string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockHistoryRepository) CheckInCountInZone(ctx context.Context, userID, zone string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, zone, since)
	return args.Int(0), args.Error(1)
}

func (m *MockHistoryRepository) DistinctZones(ctx context.Context, userID string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockHistoryRepository) ReviewCount(ctx context.Context, userID string, filter ReviewFilter, since time.Time) (int, error) {
	args := m.Called(ctx, userID, filter, since)
	return args.Int(0), args.Error(1)
}

func (m *MockHistoryRepository) FollowingCount(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockHistoryRepository) FollowerCount(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockHistoryRepository) HelpfulVotesReceived(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
