package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martinsvarc/visionboard-sub000/internal/services"
	"github.com/martinsvarc/visionboard-sub000/pkg/logger"
)

// GetLeaderboard returns the current weekly dense ranking, optionally scoped
// to a team via ?teamId= and truncated via ?limit=.
func GetLeaderboard(c *gin.Context) {
	teamID := c.Query("teamId")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	entries, err := services.WeeklyLeaderboard(teamID, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load leaderboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
