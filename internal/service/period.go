package service

import (
	"fmt"
	"time"

	"github.com/Omar-0O/rtc-volunteers/pkg/apperror"
)

// Period selects a leaderboard/report time window anchored at a reference
// date. All calendar math happens in the reporting timezone.
type Period string

const (
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
	PeriodQuarter   Period = "quarter"
	PeriodThirdYear Period = "third_year"
	PeriodHalfYear  Period = "half_year"
	PeriodYear      Period = "year"
	PeriodAllTime   Period = "all_time"
)

// ParsePeriod validates a period selector coming from a query string.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodThirdYear, PeriodHalfYear, PeriodYear, PeriodAllTime:
		return Period(s), nil
	case "":
		return PeriodAllTime, nil
	}
	return "", fmt.Errorf("%w: unknown period %q", apperror.ErrInvalidInput, s)
}

// Window is a closed [Start, End] range. Nil bounds mean unbounded
// (all-time).
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls inside the window, bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// ResolveWindow computes the concrete window for a period anchored at ref.
// The week starts on Saturday; third_year buckets are the fixed
// Jan–Apr / May–Aug / Sep–Dec thirds; half_year is Jan–Jun / Jul–Dec.
func ResolveWindow(p Period, ref time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	ref = ref.In(loc)
	year, month, day := ref.Date()

	var start, end time.Time
	switch p {
	case PeriodWeek:
		// Saturday-start week.
		offset := (int(ref.Weekday()) - int(time.Saturday) + 7) % 7
		start = time.Date(year, month, day, 0, 0, 0, 0, loc).AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case PeriodMonth:
		start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	case PeriodQuarter:
		startMonth := time.Month(((int(month)-1)/3)*3 + 1)
		start = time.Date(year, startMonth, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 3, 0).Add(-time.Nanosecond)
	case PeriodThirdYear:
		startMonth := time.Month(((int(month)-1)/4)*4 + 1)
		start = time.Date(year, startMonth, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 4, 0).Add(-time.Nanosecond)
	case PeriodHalfYear:
		startMonth := time.January
		if month > time.June {
			startMonth = time.July
		}
		start = time.Date(year, startMonth, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 6, 0).Add(-time.Nanosecond)
	case PeriodYear:
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	default: // PeriodAllTime
		return Window{}
	}

	return Window{Start: &start, End: &end}
}
