package services

import (
	"github.com/martinsvarc/visionboard-sub000/internal/models"
)

// EvaluateBadges returns every badge identifier the current counters qualify
// for, across the streak, calls and activity families. League badges are
// excluded: only the weekly reset awards those. The function is pure; the
// caller unions the result into the persisted set so unlocks stay monotonic
// even when a later streak break drops the counters back below a threshold.
func EvaluateBadges(p *models.UserProgress) []string {
	var earned []string

	for _, t := range models.StreakThresholds {
		if p.CurrentStreak >= t {
			earned = append(earned, models.StreakBadgeID(t))
		}
	}

	for _, t := range models.CallThresholds {
		if p.TotalSessions >= t {
			earned = append(earned, models.CallsBadgeID(t))
		}
	}

	if p.SessionsToday >= models.DailyActivityThreshold {
		earned = append(earned, models.BadgeDailyActivity)
	}
	if p.SessionsThisWeek >= models.WeeklyActivityThreshold {
		earned = append(earned, models.BadgeWeeklyActivity)
	}
	if p.SessionsThisMonth >= models.MonthlyActivityThreshold {
		earned = append(earned, models.BadgeMonthlyActivity)
	}

	return earned
}

// MergeBadges unions earned identifiers into the unlocked set and returns the
// ones that are new.
func MergeBadges(p *models.UserProgress, earned []string) []string {
	var added []string
	for _, id := range earned {
		if p.AddBadge(id) {
			added = append(added, id)
		}
	}
	return added
}
