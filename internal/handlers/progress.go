package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martinsvarc/visionboard-sub000/internal/services"
	"github.com/martinsvarc/visionboard-sub000/pkg/logger"
)

// GetProgress returns the full gamification projection for a user: badge
// grids with unlocked flags, the user's row, top-10 boards and the 7-day
// points chart. Unknown users get the default projection.
func GetProgress(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	view, err := services.GetProgress(userID, time.Now())
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load progress")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetStreak returns current/longest streak, the monthly consistency ratio
// and the historic active-date set.
func GetStreak(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	view, err := services.GetStreak(userID, time.Now())
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load streak")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load streak"})
		return
	}

	c.JSON(http.StatusOK, view)
}
