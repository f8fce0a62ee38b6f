// Package scheduler runs the periodic progress resets for daily and weekly
// missions.
package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/tastetrail/progression/pkg/cache"
	"github.com/tastetrail/progression/pkg/domain"
	"github.com/tastetrail/progression/pkg/errors"
	"github.com/tastetrail/progression/pkg/repository"
)

// ResetScheduler zeroes daily and weekly mission progress at period
// boundaries. The timezone is injected; boundaries are local midnight and
// local Monday midnight.
//
// Resets are destructive bulk writes, so each job carries an overlap guard:
// a run that starts while a prior run of the same job is still in flight is
// skipped with ErrResetInProgress.
type ResetScheduler struct {
	cache    cache.MissionCache
	progress repository.ProgressRepository
	loc      *time.Location
	tick     time.Duration
	logger   *slog.Logger
	now      func() time.Time

	dailyRunning  atomic.Bool
	weeklyRunning atomic.Bool
}

// NewResetScheduler creates a ResetScheduler.
func NewResetScheduler(
	missionCache cache.MissionCache,
	progress repository.ProgressRepository,
	loc *time.Location,
	tick time.Duration,
	logger *slog.Logger,
) *ResetScheduler {
	return &ResetScheduler{
		cache:    missionCache,
		progress: progress,
		loc:      loc,
		tick:     tick,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the scheduler's clock. Test hook.
func (s *ResetScheduler) WithClock(now func() time.Time) *ResetScheduler {
	s.now = now
	return s
}

// ResetDailyMissions zeroes every daily mission's progress rows. Weekly and
// narrative rows are never touched. Returns the number of rows reset.
func (s *ResetScheduler) ResetDailyMissions(ctx context.Context) (int64, error) {
	return s.reset(ctx, "daily", domain.PeriodicityDaily, &s.dailyRunning)
}

// ResetWeeklyMissions zeroes every weekly mission's progress rows. Daily and
// narrative rows are never touched. Returns the number of rows reset.
func (s *ResetScheduler) ResetWeeklyMissions(ctx context.Context) (int64, error) {
	return s.reset(ctx, "weekly", domain.PeriodicityWeekly, &s.weeklyRunning)
}

func (s *ResetScheduler) reset(ctx context.Context, job string, p domain.Periodicity, running *atomic.Bool) (int64, error) {
	if !running.CompareAndSwap(false, true) {
		return 0, errors.ErrResetInProgress(job)
	}
	defer running.Store(false)

	missions := s.cache.MissionsByPeriodicity(p)
	missionIDs := make([]string, 0, len(missions))
	for _, mission := range missions {
		missionIDs = append(missionIDs, mission.ID)
	}

	affected, err := s.progress.ResetPeriodic(ctx, missionIDs)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Mission progress reset",
		"job", job,
		"missions", len(missionIDs),
		"rows_reset", affected,
	)

	return affected, nil
}

// Run drives the resets from an in-process ticker until the context is
// canceled. The daily reset fires when the local date changes; the weekly
// reset fires when the local ISO week changes. Hosts with an external
// cron-equivalent can skip Run and invoke the reset methods directly.
func (s *ResetScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	lastDay := s.dayMarker(s.now())
	lastWeek := s.weekMarker(s.now())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := s.now()

			if day := s.dayMarker(now); day != lastDay {
				lastDay = day
				if _, err := s.ResetDailyMissions(ctx); err != nil {
					s.logger.Error("Daily mission reset failed", "error", err)
				}
			}

			if week := s.weekMarker(now); week != lastWeek {
				lastWeek = week
				if _, err := s.ResetWeeklyMissions(ctx); err != nil {
					s.logger.Error("Weekly mission reset failed", "error", err)
				}
			}
		}
	}
}

// dayMarker identifies the local calendar day containing t.
func (s *ResetScheduler) dayMarker(t time.Time) string {
	return t.In(s.loc).Format("2006-01-02")
}

// weekMarker identifies the local ISO week containing t.
func (s *ResetScheduler) weekMarker(t time.Time) int {
	year, week := t.In(s.loc).ISOWeek()
	return year*100 + week
}
