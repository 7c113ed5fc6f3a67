package services

import (
	stderrors "errors"
	"time"

	"github.com/martinsvarc/visionboard-sub000/internal/database"
	"github.com/martinsvarc/visionboard-sub000/internal/models"
	"github.com/martinsvarc/visionboard-sub000/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityInput struct {
	UserID      string  `json:"userId" binding:"required"`
	DisplayName string  `json:"displayName"`
	PictureURL  string  `json:"pictureUrl"`
	TeamID      string  `json:"teamId"`
	Points      float64 `json:"points"`
}

type ActivityResult struct {
	Progress   models.UserProgress `json:"progress"`
	WeeklyRank int                 `json:"weeklyRank"`
	NewBadges  []string            `json:"newBadges"`
}

// lockForUpdate takes a row lock so concurrent events for the same user are
// serialized by the database. sqlite (tests) has no row locks; its writes are
// serialized by the connection anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// RecordActivity runs the full per-event pipeline: streak advance, counter
// rollover with lazy weekly catch-up, point accrual, badge evaluation. The
// row is created implicitly on a user's first activity. Everything happens
// inside one transaction holding the user's row lock, so concurrent events
// never lose an increment.
func RecordActivity(in ActivityInput, now time.Time) (*ActivityResult, error) {
	if in.UserID == "" {
		return nil, errors.BadRequest("userId is required")
	}
	if err := ValidatePoints(in.Points); err != nil {
		return nil, err
	}

	day := DayOf(now)
	var progress models.UserProgress
	var newBadges []string

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		found := true
		if err := lockForUpdate(tx).First(&progress, "user_id = ?", in.UserID).Error; err != nil {
			if !stderrors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			found = false
			progress = models.UserProgress{
				UserID:            in.UserID,
				DailyPointsByDate: models.DailyPoints{},
			}
		}

		if in.DisplayName != "" {
			progress.DisplayName = in.DisplayName
		}
		if in.PictureURL != "" {
			progress.PictureURL = in.PictureURL
		}
		if in.TeamID != "" {
			progress.TeamID = in.TeamID
		}

		// Streak first: it must see the pre-event lastActivityDate, which
		// RollCounters advances as its final step.
		progress.CurrentStreak, progress.LongestStreak = AdvanceStreak(
			progress.CurrentStreak, progress.LongestStreak, progress.LastActivityDate, day)

		freshWeek := RollCounters(&progress, day, now)
		ApplyPoints(&progress, in.Points, day, freshWeek)
		newBadges = MergeBadges(&progress, EvaluateBadges(&progress))

		if found {
			if err := tx.Save(&progress).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Create(&progress).Error; err != nil {
				return err
			}
		}

		session := models.ActivitySession{
			UserID:     in.UserID,
			Points:     in.Points,
			OccurredOn: day,
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}

	InvalidateLeaderboardCache()
	database.CacheInvalidate("streak:" + in.UserID)

	rank, err := WeeklyRankOf(&progress)
	if err != nil {
		return nil, err
	}

	if newBadges == nil {
		newBadges = []string{}
	}
	return &ActivityResult{Progress: progress, WeeklyRank: rank, NewBadges: newBadges}, nil
}

type BadgeStatus struct {
	models.BadgeDef
	Unlocked bool `json:"unlocked"`
}

type DailyPointEntry struct {
	Date   string  `json:"date"`
	Points float64 `json:"points"`
}

type ProgressView struct {
	StreakBadges     []BadgeStatus       `json:"streakBadges"`
	CallBadges       []BadgeStatus       `json:"callBadges"`
	ActivityBadges   []BadgeStatus       `json:"activityBadges"`
	LeagueBadges     []BadgeStatus       `json:"leagueBadges"`
	UserData         models.UserProgress `json:"userData"`
	WeeklyTop10      []RankingEntry      `json:"weeklyTop10"`
	TeamTop10        []RankingEntry      `json:"teamTop10"`
	DailyPointsChart []DailyPointEntry   `json:"dailyPointsChart"`
}

// GetProgress builds the read-only projection. Unlocked flags come from set
// membership only; the evaluator is never re-run on reads. An unknown user is
// a valid state and yields the default projection, not an error.
func GetProgress(userID string, now time.Time) (*ProgressView, error) {
	var progress models.UserProgress
	err := database.DB.First(&progress, "user_id = ?", userID).Error
	if err != nil {
		if !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		progress = models.UserProgress{
			UserID:            userID,
			DailyPointsByDate: models.DailyPoints{},
			UnlockedBadges:    []string{},
		}
	}

	view := &ProgressView{
		StreakBadges:   badgeStatuses(models.StreakBadges(), &progress),
		CallBadges:     badgeStatuses(models.CallBadges(), &progress),
		ActivityBadges: badgeStatuses(models.ActivityBadges(), &progress),
		LeagueBadges:   badgeStatuses(models.LeagueBadges(), &progress),
		UserData:       progress,
		TeamTop10:      []RankingEntry{},
	}

	weekly, err := WeeklyLeaderboard("", 10)
	if err != nil {
		return nil, err
	}
	view.WeeklyTop10 = weekly

	if progress.TeamID != "" {
		team, err := WeeklyLeaderboard(progress.TeamID, 10)
		if err != nil {
			return nil, err
		}
		view.TeamTop10 = team
	}

	// Last 7 days, oldest first
	day := DayOf(now)
	for i := 6; i >= 0; i-- {
		key := day.AddDate(0, 0, -i).Format(models.DateKeyLayout)
		view.DailyPointsChart = append(view.DailyPointsChart, DailyPointEntry{
			Date:   key,
			Points: progress.DailyPointsByDate[key],
		})
	}

	return view, nil
}

func badgeStatuses(defs []models.BadgeDef, p *models.UserProgress) []BadgeStatus {
	statuses := make([]BadgeStatus, 0, len(defs))
	for _, def := range defs {
		statuses = append(statuses, BadgeStatus{BadgeDef: def, Unlocked: p.HasBadge(def.ID)})
	}
	return statuses
}

type StreakView struct {
	Current            int      `json:"current"`
	Longest            int      `json:"longest"`
	ConsistencyPercent int      `json:"consistencyPercent"`
	ActiveDates        []string `json:"activeDates"`
}

// GetStreak returns streak figures plus the full historic active-date set.
// Cached in Redis briefly; RecordActivity invalidates the key.
func GetStreak(userID string, now time.Time) (*StreakView, error) {
	cacheKey := "streak:" + userID
	var cached StreakView
	if err := database.CacheGet(cacheKey, &cached); err == nil {
		return &cached, nil
	}

	view := &StreakView{ActiveDates: []string{}}

	var progress models.UserProgress
	err := database.DB.First(&progress, "user_id = ?", userID).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		return nil, err
	}
	view.Current = progress.CurrentStreak
	view.Longest = progress.LongestStreak

	var dates []time.Time
	err = database.DB.Model(&models.ActivitySession{}).
		Where("user_id = ?", userID).
		Distinct("occurred_on").
		Order("occurred_on asc").
		Pluck("occurred_on", &dates).Error
	if err != nil {
		return nil, err
	}

	view.ConsistencyPercent = MonthlyConsistency(dates, now)
	for _, d := range dates {
		view.ActiveDates = append(view.ActiveDates, DayOf(d).Format(models.DateKeyLayout))
	}

	database.CacheSet(cacheKey, view, time.Minute)
	return view, nil
}
