package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martinsvarc/visionboard-sub000/internal/config"
	"github.com/martinsvarc/visionboard-sub000/pkg/logger"
)

// CronAuthMiddleware gates scheduler-triggered endpoints behind the shared
// secret carried in the X-Cron-Secret header. A missing CRON_SECRET config
// closes the endpoint entirely rather than leaving it open.
func CronAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := config.AppConfig.CronSecret
		provided := c.GetHeader("X-Cron-Secret")

		if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(provided)) != 1 {
			logger.Warn().Str("ip", c.ClientIP()).Msg("Rejected cron trigger with bad secret")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
