package services

import (
	"time"

	"github.com/martinsvarc/visionboard-sub000/internal/models"
)

// All period math lives here so the per-event path and the scheduled reset
// agree on what "current cycle" means.

// DayOf truncates t to UTC midnight.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}

func SameMonth(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// NextResetTime returns the upcoming cycle boundary: the next Sunday 00:00
// UTC strictly after the day of now. An instant landing exactly on a boundary
// already belongs to the new cycle, so its next reset is the following Sunday.
func NextResetTime(now time.Time) time.Time {
	day := DayOf(now)
	daysUntil := (7 - int(day.Weekday())) % 7
	if daysUntil == 0 {
		daysUntil = 7
	}
	return day.AddDate(0, 0, daysUntil)
}

// RollCounters applies one activity event dated eventDay to the session
// counters. Every comparison uses the previous lastActivityDate; the field is
// only advanced at the end. Repeat events on the same day keep incrementing
// the counters (the streak alone ignores same-day repeats).
//
// The weekly window is owned by weeklyResetAt, not the calendar week of the
// event: when now is past the boundary the weekly counters are stale, so they
// restart at 1 and the boundary advances. This lazy catch-up keeps a user who
// returns after a missed scheduled cycle from accumulating without bound.
// Returns true when the weekly cycle was freshly started.
func RollCounters(p *models.UserProgress, eventDay, now time.Time) (freshWeek bool) {
	eventDay = DayOf(eventDay)
	last := p.LastActivityDate

	p.TotalSessions++

	if last != nil && SameDay(*last, eventDay) {
		p.SessionsToday++
	} else {
		p.SessionsToday = 1
	}

	if p.WeeklyResetAt.IsZero() || !now.Before(p.WeeklyResetAt) {
		p.SessionsThisWeek = 1
		p.WeeklyResetAt = NextResetTime(now)
		freshWeek = true
	} else {
		p.SessionsThisWeek++
	}

	if last != nil && SameMonth(*last, eventDay) {
		p.SessionsThisMonth++
	} else {
		p.SessionsThisMonth = 1
	}

	d := eventDay
	p.LastActivityDate = &d
	return freshWeek
}
