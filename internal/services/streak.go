package services

import (
	"math"
	"time"

	"github.com/martinsvarc/visionboard-sub000/internal/models"
)

// AdvanceStreak applies one activity event on today's date to a streak.
// Same-day repeats leave the streak alone, activity the day after the last
// one extends it, anything else (a gap of two or more days, or no history)
// restarts it at 1. The longest streak is recomputed on every call.
func AdvanceStreak(current, longest int, last *time.Time, today time.Time) (int, int) {
	day := DayOf(today)
	switch {
	case last == nil:
		current = 1
	case SameDay(*last, day):
		// no change
	case DayOf(*last).AddDate(0, 0, 1).Equal(day):
		current++
	default:
		current = 1
	}
	if current > longest {
		longest = current
	}
	return current, longest
}

// MonthlyConsistency returns the percentage of elapsed days this month with
// at least one recorded activity. Multiple sessions on one day count once.
func MonthlyConsistency(activeDates []time.Time, today time.Time) int {
	day := DayOf(today)
	elapsed := day.Day()
	if elapsed < 1 {
		elapsed = 1
	}

	seen := make(map[string]bool)
	for _, d := range activeDates {
		d = DayOf(d)
		if d.Year() == day.Year() && d.Month() == day.Month() && d.Day() <= day.Day() {
			seen[d.Format(models.DateKeyLayout)] = true
		}
	}
	if len(seen) == 0 {
		return 0
	}

	pct := int(math.Round(100 * float64(len(seen)) / float64(elapsed)))
	if pct > 100 {
		pct = 100
	}
	return pct
}
