package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martinsvarc/visionboard-sub000/internal/services"
	"github.com/martinsvarc/visionboard-sub000/pkg/logger"
)

// RunWeeklyReset is invoked by the external scheduler once per cycle (the
// route is guarded by the cron shared-secret middleware). Re-triggering for
// an already-reset cycle is safe.
func RunWeeklyReset(c *gin.Context) {
	summary, err := services.RunWeeklyReset(time.Now())
	if err != nil {
		logger.Error().Err(err).Msg("Weekly reset failed, no users were committed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":          "Weekly reset failed",
			"usersCommitted": 0,
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
