package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"week", "month", "quarter", "third_year", "half_year", "year", "all_time"} {
		p, err := ParsePeriod(valid)
		require.NoError(t, err)
		assert.Equal(t, Period(valid), p)
	}

	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodAllTime, p, "empty selector defaults to all_time")

	_, err = ParsePeriod("fortnight")
	assert.Error(t, err)
}

func TestResolveWindowWeekStartsSaturday(t *testing.T) {
	// 2026-08-26 is a Wednesday.
	ref := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)
	w := ResolveWindow(PeriodWeek, ref, time.UTC)

	require.NotNil(t, w.Start)
	require.NotNil(t, w.End)
	assert.Equal(t, time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC), *w.Start)
	assert.Equal(t, time.Saturday, w.Start.Weekday())
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), *w.End)
}

func TestResolveWindowWeekOnSaturday(t *testing.T) {
	ref := time.Date(2026, 8, 22, 9, 0, 0, 0, time.UTC)
	w := ResolveWindow(PeriodWeek, ref, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC), *w.Start, "a Saturday anchors its own week")
}

func TestResolveWindowMonth(t *testing.T) {
	ref := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	w := ResolveWindow(PeriodMonth, ref, time.UTC)

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *w.Start)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), *w.End)
}

func TestResolveWindowThirdYear(t *testing.T) {
	tests := []struct {
		month     time.Month
		wantStart time.Month
	}{
		{time.January, time.January},
		{time.April, time.January},
		{time.May, time.May},
		{time.August, time.May},
		{time.September, time.September},
		{time.December, time.September},
	}

	for _, tt := range tests {
		ref := time.Date(2026, tt.month, 10, 0, 0, 0, 0, time.UTC)
		w := ResolveWindow(PeriodThirdYear, ref, time.UTC)
		assert.Equal(t, tt.wantStart, w.Start.Month(), "month=%s", tt.month)
		assert.Equal(t, tt.wantStart+3, w.End.Month(), "month=%s", tt.month)
	}
}

func TestResolveWindowHalfYear(t *testing.T) {
	w := ResolveWindow(PeriodHalfYear, time.Date(2026, 6, 30, 23, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, time.January, w.Start.Month())

	w = ResolveWindow(PeriodHalfYear, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, time.July, w.Start.Month())
}

func TestResolveWindowAllTimeIsUnbounded(t *testing.T) {
	w := ResolveWindow(PeriodAllTime, time.Now(), time.UTC)
	assert.Nil(t, w.Start)
	assert.Nil(t, w.End)
	assert.True(t, w.Contains(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestWindowContainsBoundsInclusive(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	w := Window{Start: &start, End: &end}

	assert.True(t, w.Contains(start))
	assert.True(t, w.Contains(end))
	assert.False(t, w.Contains(start.Add(-time.Nanosecond)))
	assert.False(t, w.Contains(end.Add(time.Nanosecond)))
}
