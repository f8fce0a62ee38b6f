package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastetrail/progression/pkg/cache"
	"github.com/tastetrail/progression/pkg/config"
	"github.com/tastetrail/progression/pkg/domain"
	"github.com/tastetrail/progression/pkg/errors"
	"github.com/tastetrail/progression/pkg/repository"
)

func testCatalog() *config.Catalog {
	return &config.Catalog{
		Missions: []*domain.Mission{
			{
				ID:          "daily-1",
				Periodicity: domain.PeriodicityDaily,
				Requirement: domain.Requirement{Kind: domain.RequirementCheckInCount, Count: 1},
				IsActive:    true,
			},
			{
				ID:          "weekly-1",
				Periodicity: domain.PeriodicityWeekly,
				Requirement: domain.Requirement{Kind: domain.RequirementCheckInCount, Count: 5},
				IsActive:    true,
			},
			{
				ID:          "narrative-1",
				Periodicity: domain.PeriodicityNarrative,
				Requirement: domain.Requirement{Kind: domain.RequirementCheckInAllZones, Count: 10},
				IsActive:    true,
			},
		},
	}
}

func newTestScheduler(t *testing.T) (*ResetScheduler, *repository.MemoryProgressRepository) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	missionCache := cache.NewInMemoryMissionCache(testCatalog(), "", logger)
	progress := repository.NewMemoryProgressRepository()

	return NewResetScheduler(missionCache, progress, time.UTC, time.Minute, logger), progress
}

func seedProgress(t *testing.T, progress *repository.MemoryProgressRepository) {
	t.Helper()
	ctx := context.Background()

	_, err := progress.IncrementAndCheck(ctx, "user-1", "daily-1", 1, 1)
	require.NoError(t, err)
	_, err = progress.IncrementAndCheck(ctx, "user-2", "daily-1", 1, 1)
	require.NoError(t, err)
	_, err = progress.IncrementAndCheck(ctx, "user-1", "weekly-1", 3, 5)
	require.NoError(t, err)
	_, err = progress.IncrementAndCheck(ctx, "user-1", "narrative-1", 4, 10)
	require.NoError(t, err)
}

func TestResetDailyMissions_TouchesOnlyDailyRows(t *testing.T) {
	scheduler, progress := newTestScheduler(t)
	seedProgress(t, progress)
	ctx := context.Background()

	affected, err := scheduler.ResetDailyMissions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	row, err := progress.GetProgress(ctx, "user-1", "daily-1")
	require.NoError(t, err)
	assert.Equal(t, 0, row.Progress)
	assert.False(t, row.Completed)

	row, err = progress.GetProgress(ctx, "user-1", "weekly-1")
	require.NoError(t, err)
	assert.Equal(t, 3, row.Progress, "weekly rows survive a daily reset")

	row, err = progress.GetProgress(ctx, "user-1", "narrative-1")
	require.NoError(t, err)
	assert.Equal(t, 4, row.Progress, "narrative rows survive a daily reset")
}

func TestResetWeeklyMissions_TouchesOnlyWeeklyRows(t *testing.T) {
	scheduler, progress := newTestScheduler(t)
	seedProgress(t, progress)
	ctx := context.Background()

	affected, err := scheduler.ResetWeeklyMissions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	row, err := progress.GetProgress(ctx, "user-1", "weekly-1")
	require.NoError(t, err)
	assert.Equal(t, 0, row.Progress)

	row, err = progress.GetProgress(ctx, "user-1", "daily-1")
	require.NoError(t, err)
	assert.Equal(t, 1, row.Progress, "daily rows survive a weekly reset")
}

func TestReset_CompletedMissionBecomesRepeatable(t *testing.T) {
	scheduler, progress := newTestScheduler(t)
	seedProgress(t, progress)
	ctx := context.Background()

	_, err := scheduler.ResetDailyMissions(ctx)
	require.NoError(t, err)

	update, err := progress.IncrementAndCheck(ctx, "user-1", "daily-1", 1, 1)
	require.NoError(t, err)
	assert.True(t, update.JustCompleted, "reset rows can complete again")
}

func TestReset_OverlapGuard(t *testing.T) {
	scheduler, _ := newTestScheduler(t)
	ctx := context.Background()

	// Simulate a run still in flight.
	require.True(t, scheduler.dailyRunning.CompareAndSwap(false, true))

	_, err := scheduler.ResetDailyMissions(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsResetInProgress(err), "expected reset-in-progress error, got %v", err)

	// The weekly job has its own guard and is unaffected.
	_, err = scheduler.ResetWeeklyMissions(ctx)
	require.NoError(t, err)

	// Releasing the guard lets the daily job run again.
	scheduler.dailyRunning.Store(false)
	_, err = scheduler.ResetDailyMissions(ctx)
	require.NoError(t, err)
}

func TestRun_FiresOnDayBoundary(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	missionCache := cache.NewInMemoryMissionCache(testCatalog(), "", logger)
	progress := repository.NewMemoryProgressRepository()

	scheduler := NewResetScheduler(missionCache, progress, time.UTC, time.Millisecond, logger)

	// The clock jumps past midnight on the second read, then holds.
	clock := time.Date(2025, 6, 11, 23, 59, 0, 0, time.UTC)
	ticks := 0
	scheduler.WithClock(func() time.Time {
		ticks++
		if ticks > 2 {
			return clock.Add(2 * time.Minute) // June 12, 00:01
		}
		return clock
	})

	seedProgress(t, progress)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := scheduler.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	row, err := progress.GetProgress(ctx, "user-1", "daily-1")
	require.NoError(t, err)
	assert.Equal(t, 0, row.Progress, "day boundary crossing triggers the daily reset")
}
