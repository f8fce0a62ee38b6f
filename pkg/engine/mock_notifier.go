package engine

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tastetrail/progression/pkg/domain"
)

// MockNotifier is a testify mock for Notifier.
type MockNotifier struct {
	mock.Mock
}

// NewMockNotifier creates a new notifier mock.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) MissionCompleted(ctx context.Context, userID string, mission *domain.Mission) {
	m.Called(ctx, userID, mission)
}

func (m *MockNotifier) BadgeAwarded(ctx context.Context, userID, badgeID string) {
	m.Called(ctx, userID, badgeID)
}
