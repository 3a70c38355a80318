// Package analysis holds the pure journal computations: the check-in streak,
// the rule-based insight engine and the dashboard aggregates. Nothing here performs
// I/O or knows which user the data belongs to.
package analysis

import "time"

// DefaultStreakLookback is the number of most recent check-in dates the
// dashboard fetches when computing a streak
const DefaultStreakLookback = 30

// CalendarDay truncates t to midnight UTC of its calendar date in t's location
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeStreak returns the number of consecutive calendar days ending at dates[0].
//
// dates must be sorted most recent first with no duplicates. The scan stops at the
// first day that is not exactly i days before dates[0]; later dates are ignored even
// if they would continue a run of their own.
func ComputeStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	latest := CalendarDay(dates[0])
	streak := 1
	for i := 1; i < len(dates); i++ {
		expected := latest.AddDate(0, 0, -i)
		if !CalendarDay(dates[i]).Equal(expected) {
			break
		}
		streak++
	}

	return streak
}
