package services

import (
	"sort"
	"sync"
	"time"

	"github.com/martinsvarc/visionboard-sub000/internal/database"
	"github.com/martinsvarc/visionboard-sub000/internal/models"
)

// RankingEntry is one row of the weekly leaderboard.
type RankingEntry struct {
	Rank         int     `json:"rank"`
	UserID       string  `json:"userId"`
	DisplayName  string  `json:"displayName"`
	PictureURL   string  `json:"pictureUrl"`
	TeamID       string  `json:"teamId"`
	WeeklyPoints float64 `json:"weeklyPoints"`
}

// In-memory cache: cache key -> {Entries, Expiry}
type cachedLeaderboard struct {
	Entries   []RankingEntry
	ExpiresAt time.Time
}

var (
	leaderboardCache = make(map[string]cachedLeaderboard)
	lbMutex          sync.RWMutex
	lbTTL            = 10 * time.Second
)

// InvalidateLeaderboardCache clears all cached rankings (call after any
// points mutation).
func InvalidateLeaderboardCache() {
	lbMutex.Lock()
	defer lbMutex.Unlock()
	leaderboardCache = make(map[string]cachedLeaderboard)
}

// DenseRank orders entries by weekly points descending and assigns dense
// ranks: tied values share a rank and the next distinct value is exactly one
// rank below, so [100, 100, 80, 50] ranks as [1, 1, 2, 3].
func DenseRank(entries []RankingEntry) []RankingEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].WeeklyPoints > entries[j].WeeklyPoints
	})

	rank := 0
	var prev float64
	for i := range entries {
		if i == 0 || entries[i].WeeklyPoints != prev {
			rank++
			prev = entries[i].WeeklyPoints
		}
		entries[i].Rank = rank
	}
	return entries
}

// WeeklyLeaderboard returns the current cycle's dense ranking, optionally
// restricted to one team, truncated to limit entries (0 = no limit). Results
// are cached briefly; rankings only cover users holding points this cycle.
func WeeklyLeaderboard(teamID string, limit int) ([]RankingEntry, error) {
	cacheKey := "global"
	if teamID != "" {
		cacheKey = "team:" + teamID
	}

	lbMutex.RLock()
	if cached, ok := leaderboardCache[cacheKey]; ok && time.Now().Before(cached.ExpiresAt) {
		lbMutex.RUnlock()
		return truncate(cached.Entries, limit), nil
	}
	lbMutex.RUnlock()

	query := database.DB.Model(&models.UserProgress{}).Where("weekly_points > 0")
	if teamID != "" {
		query = query.Where("team_id = ?", teamID)
	}

	var users []models.UserProgress
	if err := query.Order("weekly_points desc").Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, RankingEntry{
			UserID:       u.UserID,
			DisplayName:  u.DisplayName,
			PictureURL:   u.PictureURL,
			TeamID:       u.TeamID,
			WeeklyPoints: u.WeeklyPoints,
		})
	}
	entries = DenseRank(entries)

	lbMutex.Lock()
	leaderboardCache[cacheKey] = cachedLeaderboard{
		Entries:   entries,
		ExpiresAt: time.Now().Add(lbTTL),
	}
	lbMutex.Unlock()

	return truncate(entries, limit), nil
}

func truncate(entries []RankingEntry, limit int) []RankingEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

// WeeklyRankOf computes one user's dense rank without materializing the whole
// board: 1 plus the count of distinct point totals above theirs.
func WeeklyRankOf(p *models.UserProgress) (int, error) {
	var higher int64
	err := database.DB.Model(&models.UserProgress{}).
		Where("weekly_points > ?", p.WeeklyPoints).
		Distinct("weekly_points").
		Count(&higher).Error
	if err != nil {
		return 0, err
	}
	return int(higher) + 1, nil
}
