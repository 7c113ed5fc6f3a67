package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martinsvarc/visionboard-sub000/internal/config"
	"github.com/martinsvarc/visionboard-sub000/internal/database"
	"github.com/martinsvarc/visionboard-sub000/internal/middleware"
	"github.com/martinsvarc/visionboard-sub000/internal/models"
	"github.com/martinsvarc/visionboard-sub000/internal/routes"
	"github.com/martinsvarc/visionboard-sub000/pkg/logger"
)

func main() {
	// 0. Load Config & Initialize Logger
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting Gamification Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Connect Database & Redis
	database.Connect()
	database.InitRedis()

	logger.Info().Msg("Running Database Migrations...")
	if err := database.DB.AutoMigrate(
		&models.UserProgress{},
		&models.ActivitySession{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run database migrations")
	}
	logger.Info().Msg("Database Migrations Complete")

	// 2. Setup Router
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// 3. Register Routes
	api := r.Group("/api")
	{
		public := api.Group("")
		public.Use(middleware.GeneralRateLimit())
		routes.RegisterGamificationRoutes(public)

		// Cron trigger carries its own shared-secret auth, no IP limit
		// (schedulers can share egress IPs)
		routes.RegisterCronRoutes(api)
	}

	// 4. Serve with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: r,
	}

	go func() {
		logger.Info().Str("port", config.AppConfig.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Forced shutdown")
	}

	logger.Info().Msg("Server exited")
}
