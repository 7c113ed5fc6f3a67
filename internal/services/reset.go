package services

import (
	"sync"
	"time"

	"github.com/martinsvarc/visionboard-sub000/internal/database"
	"github.com/martinsvarc/visionboard-sub000/internal/models"
	"github.com/martinsvarc/visionboard-sub000/pkg/logger"
	"gorm.io/gorm"
)

type ResetSummary struct {
	UsersUpdated  int            `json:"usersUpdated"`
	NextResetAt   time.Time      `json:"nextResetAt"`
	FinalRankings []RankingEntry `json:"finalRankings"`
}

// Only one reset cycle may run at a time.
var resetMu sync.Mutex

// RunWeeklyReset closes the current cycle: it dense-ranks every user holding
// weekly points, awards league badges to the top three ranks, zeroes weekly
// points and weekly session counters for everyone, and advances every row to
// the next boundary. The whole cycle runs inside one transaction, so a
// failure partway leaves no user reset for this cycle.
//
// The operation is idempotent per cycle: a duplicate trigger finds all
// weekly points already zero, producing an empty ranking and a harmless
// re-zero, and league badges union into the set so none are duplicated.
func RunWeeklyReset(now time.Time) (*ResetSummary, error) {
	resetMu.Lock()
	defer resetMu.Unlock()

	next := NextResetTime(now)
	summary := &ResetSummary{
		NextResetAt:   next,
		FinalRankings: []RankingEntry{},
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var users []models.UserProgress
		if err := lockForUpdate(tx).Find(&users).Error; err != nil {
			return err
		}

		// Pre-reset ranking, only users who scored this cycle
		var contenders []RankingEntry
		for _, u := range users {
			if u.WeeklyPoints > 0 {
				contenders = append(contenders, RankingEntry{
					UserID:       u.UserID,
					DisplayName:  u.DisplayName,
					PictureURL:   u.PictureURL,
					TeamID:       u.TeamID,
					WeeklyPoints: u.WeeklyPoints,
				})
			}
		}
		ranked := DenseRank(contenders)

		rankByUser := make(map[string]int, len(ranked))
		for _, e := range ranked {
			rankByUser[e.UserID] = e.Rank
		}

		for i := range users {
			u := &users[i]
			u.AddBadge(models.LeagueBadgeID(rankByUser[u.UserID]))
			u.WeeklyPoints = 0
			u.SessionsThisWeek = 0
			u.WeeklyResetAt = next
			// Daily point buckets are retained for historical charts

			if err := tx.Save(u).Error; err != nil {
				return err
			}
		}

		summary.FinalRankings = ranked
		summary.UsersUpdated = len(users)
		return nil
	})
	if err != nil {
		return nil, err
	}

	InvalidateLeaderboardCache()
	database.CacheInvalidate("streak:*")

	logger.Info().
		Int("users_updated", summary.UsersUpdated).
		Int("ranked", len(summary.FinalRankings)).
		Time("next_reset_at", summary.NextResetAt).
		Msg("Weekly reset committed")

	return summary, nil
}
