package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martinsvarc/visionboard-sub000/internal/database"
	"github.com/martinsvarc/visionboard-sub000/internal/services"
	"github.com/martinsvarc/visionboard-sub000/pkg/errors"
	"github.com/martinsvarc/visionboard-sub000/pkg/logger"
)

// RecordActivity handles one practice-call event: upserts the user's progress
// row, advances streaks/counters/points and returns the updated row with its
// current weekly rank and any newly unlocked badges.
func RecordActivity(c *gin.Context) {
	var input services.ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Per-user burst guard; disabled when Redis is down
	allowed, err := database.CheckRateLimit("activity:"+input.UserID, 60, time.Minute)
	if err != nil {
		logger.Warn().Err(err).Msg("Rate limit check failed, allowing request")
	} else if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": errors.ErrRateLimit.Message})
		return
	}

	result, err := services.RecordActivity(input, time.Now())
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		logger.Error().Err(err).Str("user_id", input.UserID).Msg("Failed to record activity")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record activity"})
		return
	}

	c.JSON(http.StatusOK, result)
}
