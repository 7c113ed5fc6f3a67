package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martinsvarc/visionboard-sub000/internal/database"
	"github.com/martinsvarc/visionboard-sub000/internal/models"
	"github.com/martinsvarc/visionboard-sub000/internal/services"
	"github.com/stretchr/testify/assert"
)

func mustParseDay(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func getWithParam(handler gin.HandlerFunc, path, paramKey, paramValue string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", path, nil)
	c.Params = gin.Params{{Key: paramKey, Value: paramValue}}

	handler(c)
	return w
}

func TestGetProgress_UnknownUser(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	w := getWithParam(GetProgress, "/api/gamification/progress/ghost", "userId", "ghost")

	assert.Equal(t, http.StatusOK, w.Code, "new user is a valid state, not an error")

	var view services.ProgressView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Len(t, view.StreakBadges, 6)
	assert.Len(t, view.CallBadges, 10)
	for _, b := range view.CallBadges {
		assert.False(t, b.Unlocked)
	}
	assert.Empty(t, view.WeeklyTop10)
}

func TestGetProgress_WithBadgesAndBoards(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.UserProgress{
		UserID:         "u1",
		DisplayName:    "Alice",
		TeamID:         "team-a",
		WeeklyPoints:   120,
		UnlockedBadges: []string{"calls_10", "streak_5"},
	})
	database.DB.Create(&models.UserProgress{
		UserID:       "u2",
		DisplayName:  "Bob",
		TeamID:       "team-b",
		WeeklyPoints: 80,
	})

	w := getWithParam(GetProgress, "/api/gamification/progress/u1", "userId", "u1")
	assert.Equal(t, http.StatusOK, w.Code)

	var view services.ProgressView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

	unlocked := map[string]bool{}
	for _, b := range append(view.CallBadges, view.StreakBadges...) {
		if b.Unlocked {
			unlocked[b.ID] = true
		}
	}
	assert.True(t, unlocked["calls_10"])
	assert.True(t, unlocked["streak_5"])
	assert.Len(t, unlocked, 2)

	assert.Len(t, view.WeeklyTop10, 2)
	assert.Equal(t, "u1", view.WeeklyTop10[0].UserID)
	assert.Len(t, view.TeamTop10, 1, "team board only holds u1's team")
}

func TestGetStreak_Endpoint(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	_, err := services.RecordActivity(services.ActivityInput{UserID: "u1", Points: 5}, mustParseDay("2025-03-10"))
	assert.NoError(t, err)
	_, err = services.RecordActivity(services.ActivityInput{UserID: "u1", Points: 5}, mustParseDay("2025-03-11"))
	assert.NoError(t, err)

	w := getWithParam(GetStreak, "/api/gamification/streak/u1", "userId", "u1")
	assert.Equal(t, http.StatusOK, w.Code)

	var view services.StreakView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 2, view.Current)
	assert.Equal(t, []string{"2025-03-10", "2025-03-11"}, view.ActiveDates)
}

func TestGetLeaderboard_Endpoint(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.UserProgress{UserID: "u1", WeeklyPoints: 100})
	database.DB.Create(&models.UserProgress{UserID: "u2", WeeklyPoints: 100})
	database.DB.Create(&models.UserProgress{UserID: "u3", WeeklyPoints: 80})
	database.DB.Create(&models.UserProgress{UserID: "u4", WeeklyPoints: 50})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/gamification/leaderboard", nil)

	GetLeaderboard(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Leaderboard []services.RankingEntry `json:"leaderboard"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Leaderboard, 4)

	ranks := []int{}
	for _, e := range response.Leaderboard {
		ranks = append(ranks, e.Rank)
	}
	assert.Equal(t, []int{1, 1, 2, 3}, ranks)
}
