package services

import (
	"testing"
	"time"

	"github.com/martinsvarc/visionboard-sub000/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDayOf(t *testing.T) {
	ts := time.Date(2025, 3, 10, 23, 45, 12, 999, time.UTC)
	assert.Equal(t, date(2025, 3, 10), DayOf(ts))
}

func TestNextResetTime(t *testing.T) {
	// Wednesday -> upcoming Sunday
	assert.Equal(t, date(2025, 3, 16), NextResetTime(date(2025, 3, 12)))

	// Mid-Sunday -> the following Sunday, not today
	assert.Equal(t, date(2025, 3, 23), NextResetTime(time.Date(2025, 3, 16, 10, 0, 0, 0, time.UTC)))

	// Exactly on the boundary belongs to the new cycle
	assert.Equal(t, date(2025, 3, 23), NextResetTime(date(2025, 3, 16)))

	// Saturday night -> tomorrow
	assert.Equal(t, date(2025, 3, 16), NextResetTime(time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)))
}

func TestRollCounters_FirstEvent(t *testing.T) {
	p := &models.UserProgress{}
	now := date(2025, 3, 10) // Monday

	fresh := RollCounters(p, now, now)

	assert.True(t, fresh)
	assert.Equal(t, 1, p.TotalSessions)
	assert.Equal(t, 1, p.SessionsToday)
	assert.Equal(t, 1, p.SessionsThisWeek)
	assert.Equal(t, 1, p.SessionsThisMonth)
	assert.Equal(t, date(2025, 3, 16), p.WeeklyResetAt)
	assert.Equal(t, date(2025, 3, 10), *p.LastActivityDate)
}

func TestRollCounters_SameDayIncrementsAll(t *testing.T) {
	p := &models.UserProgress{}
	now := date(2025, 3, 10)
	RollCounters(p, now, now)
	fresh := RollCounters(p, now, now.Add(2*time.Hour))

	assert.False(t, fresh)
	assert.Equal(t, 2, p.TotalSessions)
	assert.Equal(t, 2, p.SessionsToday)
	assert.Equal(t, 2, p.SessionsThisWeek)
	assert.Equal(t, 2, p.SessionsThisMonth)
}

func TestRollCounters_NewDayResetsDaily(t *testing.T) {
	p := &models.UserProgress{}
	RollCounters(p, date(2025, 3, 10), date(2025, 3, 10))
	RollCounters(p, date(2025, 3, 11), date(2025, 3, 11))

	assert.Equal(t, 1, p.SessionsToday)
	assert.Equal(t, 2, p.SessionsThisWeek)
	assert.Equal(t, 2, p.SessionsThisMonth)
}

func TestRollCounters_LazyWeeklyCatchUp(t *testing.T) {
	p := &models.UserProgress{}
	RollCounters(p, date(2025, 3, 10), date(2025, 3, 10))
	RollCounters(p, date(2025, 3, 11), date(2025, 3, 11))
	assert.Equal(t, 2, p.SessionsThisWeek)

	// The scheduled reset never ran; the next event is past the boundary
	fresh := RollCounters(p, date(2025, 3, 17), date(2025, 3, 17))

	assert.True(t, fresh)
	assert.Equal(t, 1, p.SessionsThisWeek)
	assert.Equal(t, date(2025, 3, 23), p.WeeklyResetAt)
}

func TestRollCounters_NewMonthResetsMonthly(t *testing.T) {
	p := &models.UserProgress{}
	RollCounters(p, date(2025, 3, 31), date(2025, 3, 31))
	RollCounters(p, date(2025, 4, 1), date(2025, 4, 1))

	assert.Equal(t, 1, p.SessionsThisMonth)
	assert.Equal(t, 2, p.TotalSessions)
}

func TestRollCounters_TotalSessionsMonotonic(t *testing.T) {
	p := &models.UserProgress{}
	days := []time.Time{
		date(2025, 3, 10), date(2025, 3, 10),
		date(2025, 3, 17), date(2025, 4, 2),
	}
	for _, d := range days {
		RollCounters(p, d, d)
	}
	assert.Equal(t, 4, p.TotalSessions)
}
