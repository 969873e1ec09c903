package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/config"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/database"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/handlers"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/middleware"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/models"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/routes"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/services"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/workers"
	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// 0. Load Config & Initialize Logger
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting Atomzr backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Connect storage
	database.Connect()
	database.InitRedis()

	logger.Info().Msg("Running database migrations...")
	if err := database.DB.AutoMigrate(&models.User{}, &models.Link{}, &models.Click{}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run database migrations")
	}
	logger.Info().Msg("Database migrations complete")

	// 2. Click tracking pipeline
	store := services.NewStore(database.DB)
	clicks := workers.StartClickWorkers(config.AppConfig.ClickWorkers, config.AppConfig.ClickBufferSize, store)

	// 3. Wire handlers
	handlers.Init(database.DB, clicks)

	// 4. Setup Router
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", handlers.HealthCheckHandler)

	api := r.Group("/api")
	api.Use(middleware.GeneralRateLimit())
	{
		routes.RegisterAuthRoutes(api.Group("/auth"))
		routes.RegisterLinkRoutes(api)
	}

	// The redirect route goes last so /health and /api stay reachable.
	routes.RegisterShortenerRoutes(r)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: r,
	}

	go func() {
		logger.Info().Str("port", config.AppConfig.Port).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Forced shutdown")
	}
	logger.Info().Msg("Server exited")
}
