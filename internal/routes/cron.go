package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/martinsvarc/visionboard-sub000/internal/handlers"
	"github.com/martinsvarc/visionboard-sub000/internal/middleware"
)

func RegisterCronRoutes(r gin.IRouter) {
	cron := r.Group("/cron")
	cron.Use(middleware.CronAuthMiddleware())
	{
		cron.POST("/weekly-reset", handlers.RunWeeklyReset)
	}
}
