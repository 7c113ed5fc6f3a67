package models

import "fmt"

type BadgeCategory string

const (
	BadgeCategoryStreak   BadgeCategory = "streak"
	BadgeCategoryCalls    BadgeCategory = "calls"
	BadgeCategoryActivity BadgeCategory = "activity"
	BadgeCategoryLeague   BadgeCategory = "league"
)

// BadgeDef is a static catalog entry; badges are not persisted per-user, only
// their identifiers appear in UserProgress.UnlockedBadges.
type BadgeDef struct {
	ID          string        `json:"id"`
	Category    BadgeCategory `json:"category"`
	Threshold   int           `json:"threshold"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

// Fixed threshold families. The unlock evaluator and the catalog both build
// identifiers through the naming functions below, so the two can never drift.
var (
	StreakThresholds = []int{5, 10, 30, 90, 180, 365}
	CallThresholds   = []int{10, 25, 50, 100, 250, 500, 750, 1000, 1500, 2500}
)

const (
	DailyActivityThreshold   = 10
	WeeklyActivityThreshold  = 50
	MonthlyActivityThreshold = 100

	BadgeDailyActivity   = "daily_10"
	BadgeWeeklyActivity  = "weekly_50"
	BadgeMonthlyActivity = "monthly_100"

	BadgeLeagueFirst  = "league_first"
	BadgeLeagueSecond = "league_second"
	BadgeLeagueThird  = "league_third"
)

func StreakBadgeID(days int) string {
	return fmt.Sprintf("streak_%d", days)
}

func CallsBadgeID(calls int) string {
	return fmt.Sprintf("calls_%d", calls)
}

// LeagueBadgeID maps a dense rank to its league badge. Ranks below the podium
// yield "".
func LeagueBadgeID(rank int) string {
	switch rank {
	case 1:
		return BadgeLeagueFirst
	case 2:
		return BadgeLeagueSecond
	case 3:
		return BadgeLeagueThird
	default:
		return ""
	}
}

func StreakBadges() []BadgeDef {
	defs := make([]BadgeDef, 0, len(StreakThresholds))
	for _, t := range StreakThresholds {
		defs = append(defs, BadgeDef{
			ID:          StreakBadgeID(t),
			Category:    BadgeCategoryStreak,
			Threshold:   t,
			Name:        fmt.Sprintf("%d Day Streak", t),
			Description: fmt.Sprintf("Practice %d days in a row", t),
		})
	}
	return defs
}

func CallBadges() []BadgeDef {
	defs := make([]BadgeDef, 0, len(CallThresholds))
	for _, t := range CallThresholds {
		defs = append(defs, BadgeDef{
			ID:          CallsBadgeID(t),
			Category:    BadgeCategoryCalls,
			Threshold:   t,
			Name:        fmt.Sprintf("%d Calls", t),
			Description: fmt.Sprintf("Complete %d practice calls", t),
		})
	}
	return defs
}

func ActivityBadges() []BadgeDef {
	return []BadgeDef{
		{ID: BadgeDailyActivity, Category: BadgeCategoryActivity, Threshold: DailyActivityThreshold, Name: "Daily Grinder", Description: "10 sessions in a single day"},
		{ID: BadgeWeeklyActivity, Category: BadgeCategoryActivity, Threshold: WeeklyActivityThreshold, Name: "Weekly Warrior", Description: "50 sessions in a single week"},
		{ID: BadgeMonthlyActivity, Category: BadgeCategoryActivity, Threshold: MonthlyActivityThreshold, Name: "Monthly Machine", Description: "100 sessions in a single month"},
	}
}

func LeagueBadges() []BadgeDef {
	return []BadgeDef{
		{ID: BadgeLeagueFirst, Category: BadgeCategoryLeague, Threshold: 1, Name: "League Champion", Description: "Finish 1st in the weekly league"},
		{ID: BadgeLeagueSecond, Category: BadgeCategoryLeague, Threshold: 2, Name: "League Runner-Up", Description: "Finish 2nd in the weekly league"},
		{ID: BadgeLeagueThird, Category: BadgeCategoryLeague, Threshold: 3, Name: "League Bronze", Description: "Finish 3rd in the weekly league"},
	}
}
