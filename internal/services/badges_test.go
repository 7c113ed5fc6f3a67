package services

import (
	"math"
	"testing"

	"github.com/martinsvarc/visionboard-sub000/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateBadges_StreakThresholds(t *testing.T) {
	p := &models.UserProgress{CurrentStreak: 30}
	earned := EvaluateBadges(p)

	assert.Contains(t, earned, "streak_5")
	assert.Contains(t, earned, "streak_10")
	assert.Contains(t, earned, "streak_30")
	assert.NotContains(t, earned, "streak_90")
}

func TestEvaluateBadges_CallThresholds(t *testing.T) {
	p := &models.UserProgress{TotalSessions: 100}
	earned := EvaluateBadges(p)

	assert.Contains(t, earned, "calls_10")
	assert.Contains(t, earned, "calls_100")
	assert.NotContains(t, earned, "calls_250")
}

func TestEvaluateBadges_ActivityThresholds(t *testing.T) {
	p := &models.UserProgress{SessionsToday: 10, SessionsThisWeek: 49, SessionsThisMonth: 100}
	earned := EvaluateBadges(p)

	assert.Contains(t, earned, models.BadgeDailyActivity)
	assert.NotContains(t, earned, models.BadgeWeeklyActivity)
	assert.Contains(t, earned, models.BadgeMonthlyActivity)
}

func TestEvaluateBadges_NeverAwardsLeague(t *testing.T) {
	p := &models.UserProgress{
		CurrentStreak: 365, TotalSessions: 2500,
		SessionsToday: 50, SessionsThisWeek: 200, SessionsThisMonth: 500,
		WeeklyPoints: 99999,
	}
	earned := EvaluateBadges(p)

	assert.NotContains(t, earned, models.BadgeLeagueFirst)
	assert.NotContains(t, earned, models.BadgeLeagueSecond)
	assert.NotContains(t, earned, models.BadgeLeagueThird)
}

func TestEvaluateBadges_Idempotent(t *testing.T) {
	p := &models.UserProgress{CurrentStreak: 10, TotalSessions: 25}
	first := EvaluateBadges(p)
	second := EvaluateBadges(p)
	assert.ElementsMatch(t, first, second)
}

func TestMergeBadges_MonotonicUnion(t *testing.T) {
	p := &models.UserProgress{CurrentStreak: 30}
	added := MergeBadges(p, EvaluateBadges(p))
	assert.Contains(t, added, "streak_30")

	// The streak breaks; re-evaluation must not remove anything
	p.CurrentStreak = 1
	added = MergeBadges(p, EvaluateBadges(p))
	assert.Empty(t, added)
	assert.True(t, p.HasBadge("streak_30"))

	// Merging the same results twice adds nothing new
	p.CurrentStreak = 30
	added = MergeBadges(p, EvaluateBadges(p))
	assert.Empty(t, added)
}

func TestValidatePoints(t *testing.T) {
	assert.NoError(t, ValidatePoints(0))
	assert.NoError(t, ValidatePoints(12.5))

	assert.Error(t, ValidatePoints(-1))
	assert.Error(t, ValidatePoints(math.NaN()))
	assert.Error(t, ValidatePoints(math.Inf(1)))
	assert.Error(t, ValidatePoints(math.Inf(-1)))
}

func TestApplyPoints(t *testing.T) {
	p := &models.UserProgress{WeeklyPoints: 40}
	day := date(2025, 3, 10)

	ApplyPoints(p, 10, day, false)
	assert.Equal(t, 50.0, p.WeeklyPoints)
	assert.Equal(t, 10.0, p.DailyPointsByDate["2025-03-10"])

	ApplyPoints(p, 5, day, false)
	assert.Equal(t, 15.0, p.DailyPointsByDate["2025-03-10"])

	// A fresh weekly cycle restarts the accumulator instead of stacking
	ApplyPoints(p, 7, date(2025, 3, 17), true)
	assert.Equal(t, 7.0, p.WeeklyPoints)
	assert.Equal(t, 15.0, p.DailyPointsByDate["2025-03-10"], "old daily buckets are retained")
}
