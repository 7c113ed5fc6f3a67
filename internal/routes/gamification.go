package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/martinsvarc/visionboard-sub000/internal/handlers"
)

func RegisterGamificationRoutes(r gin.IRouter) {
	g := r.Group("/gamification")
	{
		g.POST("/activity", handlers.RecordActivity)
		g.GET("/progress/:userId", handlers.GetProgress)
		g.GET("/streak/:userId", handlers.GetStreak)
		g.GET("/leaderboard", handlers.GetLeaderboard)
	}
}
