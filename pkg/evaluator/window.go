package evaluator

import (
	"time"

	"github.com/tastetrail/progression/pkg/domain"
)

// Windows resolves progress windows in an explicitly configured timezone.
// The timezone is injected, never hardcoded: daily and weekly boundaries are
// local to wherever the platform operates.
type Windows struct {
	loc *time.Location
}

// NewWindows creates a window resolver for the given location.
func NewWindows(loc *time.Location) Windows {
	return Windows{loc: loc}
}

// DayStart returns local midnight of the day containing now.
func (w Windows) DayStart(now time.Time) time.Time {
	local := now.In(w.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, w.loc)
}

// WeekStart returns Monday 00:00 of the week containing now.
// Sunday rolls back to the previous Monday, not forward.
func (w Windows) WeekStart(now time.Time) time.Time {
	local := now.In(w.loc)
	daysSinceMonday := int(local.Weekday()) - int(time.Monday)
	if daysSinceMonday < 0 {
		daysSinceMonday += 7 // Sunday (weekday 0) is six days past Monday
	}
	monday := local.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, w.loc)
}

// ForPeriodicity returns the start of the progress window for the given
// periodicity. Narrative missions have no window; the zero time predates
// all history.
func (w Windows) ForPeriodicity(p domain.Periodicity, now time.Time) time.Time {
	switch p {
	case domain.PeriodicityDaily:
		return w.DayStart(now)
	case domain.PeriodicityWeekly:
		return w.WeekStart(now)
	default:
		return time.Time{}
	}
}
