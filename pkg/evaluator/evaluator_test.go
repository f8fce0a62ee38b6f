package evaluator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tastetrail/progression/pkg/domain"
	"github.com/tastetrail/progression/pkg/errors"
	"github.com/tastetrail/progression/pkg/repository"
)

var testNow = time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC) // Wednesday

func newTestEvaluator(history repository.HistoryRepository) *Evaluator {
	return New(history, NewWindows(time.UTC))
}

func TestEvaluate_UniqueCheckInCount_UsesDistinctEstablishments(t *testing.T) {
	history := repository.NewMockHistoryRepository()
	eval := newTestEvaluator(history)

	mission := &domain.Mission{
		ID:          "explorer",
		Periodicity: domain.PeriodicityWeekly,
		Requirement: domain.Requirement{Kind: domain.RequirementCheckInCount, Count: 5, Unique: true},
	}

	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	history.On("DistinctEstablishments", mock.Anything, "user-1", weekStart).Return(3, nil)

	count, err := eval.Evaluate(context.Background(), "user-1", mission, testNow)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	history.AssertExpectations(t)
}

func TestEvaluate_DailyWindowPassedToHistory(t *testing.T) {
	history := repository.NewMockHistoryRepository()
	eval := newTestEvaluator(history)

	mission := &domain.Mission{
		ID:          "daily-checkin",
		Periodicity: domain.PeriodicityDaily,
		Requirement: domain.Requirement{Kind: domain.RequirementCheckInCount, Count: 1},
	}

	dayStart := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	history.On("CheckInCount", mock.Anything, "user-1", dayStart).Return(1, nil)

	count, err := eval.Evaluate(context.Background(), "user-1", mission, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	history.AssertExpectations(t)
}

func TestEvaluate_NarrativeHasNoWindow(t *testing.T) {
	history := repository.NewMockHistoryRepository()
	eval := newTestEvaluator(history)

	mission := &domain.Mission{
		ID:          "all-zones",
		Periodicity: domain.PeriodicityNarrative,
		Requirement: domain.Requirement{Kind: domain.RequirementCheckInAllZones, Count: 10},
	}

	history.On("DistinctZones", mock.Anything, "user-1", time.Time{}).Return(7, nil)

	count, err := eval.Evaluate(context.Background(), "user-1", mission, testNow)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	history.AssertExpectations(t)
}

func TestEvaluate_ZoneRequirement(t *testing.T) {
	history := repository.NewMockHistoryRepository()
	eval := newTestEvaluator(history)

	mission := &domain.Mission{
		ID:          "downtown-regular",
		Periodicity: domain.PeriodicityWeekly,
		Requirement: domain.Requirement{Kind: domain.RequirementCheckInZone, Zone: "downtown", Count: 3},
	}

	history.On("CheckInCountInZone", mock.Anything, "user-1", "downtown", mock.Anything).Return(2, nil)

	count, err := eval.Evaluate(context.Background(), "user-1", mission, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestEvaluate_QualityReviewForcesPhotoFilter(t *testing.T) {
	history := repository.NewMockHistoryRepository()
	eval := newTestEvaluator(history)

	mission := &domain.Mission{
		ID:          "critic",
		Periodicity: domain.PeriodicityWeekly,
		Requirement: domain.Requirement{Kind: domain.RequirementWriteQualityReview, MinLength: 100, WithPhotos: true, Count: 1},
	}

	wantFilter := repository.ReviewFilter{MinLength: 100, WithPhotos: true}
	history.On("ReviewCount", mock.Anything, "user-1", wantFilter, mock.Anything).Return(1, nil)

	count, err := eval.Evaluate(context.Background(), "user-1", mission, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	history.AssertExpectations(t)
}

func TestEvaluate_UnknownKindIsConfigError(t *testing.T) {
	eval := newTestEvaluator(&repository.StubHistoryRepository{})

	mission := &domain.Mission{
		ID:          "broken",
		Periodicity: domain.PeriodicityDaily,
		Requirement: domain.Requirement{Kind: "teleport_count", Count: 1},
	}

	_, err := eval.Evaluate(context.Background(), "user-1", mission, testNow)
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err), "expected config error, got %v", err)
}

func TestBadgeCount(t *testing.T) {
	history := &repository.StubHistoryRepository{
		CheckIns:     42,
		Reviews:      10,
		Zones:        5,
		Followers:    100,
		HelpfulVotes: 25,
	}
	eval := newTestEvaluator(history)
	ctx := context.Background()

	tests := []struct {
		requirementType string
		wantCount       int
		wantOK          bool
	}{
		{domain.BadgeRequirementCheckInCount, 42, true},
		{domain.BadgeRequirementReviewCount, 10, true},
		{domain.BadgeRequirementUniqueZones, 5, true},
		{domain.BadgeRequirementFollowerCount, 100, true},
		{domain.BadgeRequirementHelpfulReceived, 25, true},
		{"first_to_review", 0, false}, // unimplemented type: false, not an error
	}

	for _, tt := range tests {
		t.Run(tt.requirementType, func(t *testing.T) {
			count, ok, err := eval.BadgeCount(ctx, "user-1", tt.requirementType)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestQualifiesCheckIn(t *testing.T) {
	event := domain.CheckInEvent{UserID: "u", EstablishmentID: "e", Zone: "downtown", Verified: true}

	tests := []struct {
		name string
		req  domain.Requirement
		want bool
	}{
		{
			name: "plain count",
			req:  domain.Requirement{Kind: domain.RequirementCheckInCount, Count: 1},
			want: true,
		},
		{
			name: "matching zone",
			req:  domain.Requirement{Kind: domain.RequirementCheckInZone, Zone: "downtown", Count: 1},
			want: true,
		},
		{
			name: "wrong zone",
			req:  domain.Requirement{Kind: domain.RequirementCheckInZone, Zone: "harbor", Count: 1},
			want: false,
		},
		{
			name: "all zones aggregate",
			req:  domain.Requirement{Kind: domain.RequirementCheckInAllZones, Count: 5},
			want: true,
		},
		{
			name: "review kind never matches a check-in",
			req:  domain.Requirement{Kind: domain.RequirementWriteReviews, Count: 1},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QualifiesCheckIn(tt.req, event))
		})
	}
}

func TestQualifiesReview(t *testing.T) {
	tests := []struct {
		name  string
		req   domain.Requirement
		event domain.ReviewEvent
		want  bool
	}{
		{
			name:  "plain review",
			req:   domain.Requirement{Kind: domain.RequirementWriteReviews, Count: 1},
			event: domain.ReviewEvent{UserID: "u", Length: 20},
			want:  true,
		},
		{
			name:  "min length met",
			req:   domain.Requirement{Kind: domain.RequirementWriteReviews, MinLength: 100, Count: 1},
			event: domain.ReviewEvent{UserID: "u", Length: 150},
			want:  true,
		},
		{
			name:  "min length not met",
			req:   domain.Requirement{Kind: domain.RequirementWriteReviews, MinLength: 100, Count: 1},
			event: domain.ReviewEvent{UserID: "u", Length: 50},
			want:  false,
		},
		{
			name:  "photo required but missing",
			req:   domain.Requirement{Kind: domain.RequirementWriteReviews, WithPhotos: true, Count: 1},
			event: domain.ReviewEvent{UserID: "u", Length: 50},
			want:  false,
		},
		{
			name:  "quality review met",
			req:   domain.Requirement{Kind: domain.RequirementWriteQualityReview, MinLength: 100, WithPhotos: true, Count: 1},
			event: domain.ReviewEvent{UserID: "u", Length: 150, HasPhoto: true},
			want:  true,
		},
		{
			name:  "quality review too short",
			req:   domain.Requirement{Kind: domain.RequirementWriteQualityReview, MinLength: 100, WithPhotos: true, Count: 1},
			event: domain.ReviewEvent{UserID: "u", Length: 50, HasPhoto: true},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QualifiesReview(tt.req, tt.event))
		})
	}
}
