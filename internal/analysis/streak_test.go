package analysis

import (
	"testing"
	"time"
)

func day(offset int) time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)
}

func days(offsets ...int) []time.Time {
	out := make([]time.Time, len(offsets))
	for i, o := range offsets {
		out[i] = day(o)
	}
	return out
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{name: "empty", dates: nil, want: 0},
		{name: "single date", dates: days(0), want: 1},
		{name: "three consecutive", dates: days(0, 1, 2), want: 3},
		{name: "gap at second day", dates: days(0, 1, 3), want: 2},
		{name: "gap immediately", dates: days(0, 2, 3, 4), want: 1},
		{name: "run after gap ignored", dates: days(0, 1, 2, 5, 6, 7, 8, 9), want: 3},
		{name: "thirty days", dates: days(seq(30)...), want: 30},
		{name: "beyond thirty", dates: days(seq(45)...), want: 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStreak(tt.dates); got != tt.want {
				t.Errorf("ComputeStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeStreak_TrailingHistoryDoesNotMatter(t *testing.T) {
	base := days(0, 1, 2, 4)
	longer := append(days(0, 1, 2, 4), days(10, 11, 12, 13, 20)...)

	if a, b := ComputeStreak(base), ComputeStreak(longer); a != b {
		t.Errorf("streak changed with trailing history: %d vs %d", a, b)
	}
}

func TestComputeStreak_IgnoresTimeOfDay(t *testing.T) {
	dates := []time.Time{
		time.Date(2025, 3, 10, 23, 15, 0, 0, time.UTC),
		time.Date(2025, 3, 9, 6, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 8, 12, 30, 0, 0, time.UTC),
	}
	if got := ComputeStreak(dates); got != 3 {
		t.Errorf("ComputeStreak() = %d, want 3", got)
	}
}

func TestComputeStreak_AcrossDSTAndMonthBoundary(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// US DST began on 2025-03-09
	dates := []time.Time{
		time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
		time.Date(2025, 3, 9, 0, 0, 0, 0, loc),
		time.Date(2025, 3, 8, 0, 0, 0, 0, loc),
		time.Date(2025, 3, 7, 0, 0, 0, 0, loc),
	}
	if got := ComputeStreak(dates); got != 4 {
		t.Errorf("ComputeStreak() across DST = %d, want 4", got)
	}

	monthEdge := []time.Time{
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC),
	}
	if got := ComputeStreak(monthEdge); got != 3 {
		t.Errorf("ComputeStreak() across month end = %d, want 3", got)
	}
}

func TestComputeStreak_Idempotent(t *testing.T) {
	dates := days(0, 1, 2, 3, 6)
	first := ComputeStreak(dates)
	second := ComputeStreak(dates)
	if first != second {
		t.Errorf("ComputeStreak not idempotent: %d then %d", first, second)
	}
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
