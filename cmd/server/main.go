package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"cricket-pulse/internal/api"
	"cricket-pulse/internal/api/middleware"
	"cricket-pulse/internal/cache"
	"cricket-pulse/internal/providers"
	"cricket-pulse/internal/services"
	"cricket-pulse/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	logger := logrus.StandardLogger()
	if cfg.IsDevelopment() {
		logger.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logger.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	// Shared cache store; all per-resource state lives here.
	store := cache.New(clockwork.NewRealClock())

	// Upstream clients. Unconfigured keys are fine: the services degrade to
	// synthesized data instead.
	weatherClient := providers.NewOpenWeatherClient(cfg.WeatherAPIKey, cfg.WeatherBaseURL, cfg.WeatherAPITimeout, cfg.WeatherRateLimit, logger)
	cricketClient := providers.NewCricAPIClient(cfg.CricketAPIKey, cfg.CricketBaseURL, cfg.CricketAPITimeout, cfg.CricketRateLimit, logger)
	if !weatherClient.Configured() {
		logger.Warn("WEATHER_API_KEY not set, weather will be synthesized")
	}
	if !cricketClient.Configured() {
		logger.Warn("CRIC_API_KEY not set, live matches will be synthesized")
	}

	// Initialize services
	playerService := services.NewPlayerService(store, cfg.PlayersCacheTTL, cfg.PlayersFile, logger)
	weatherService := services.NewWeatherService(store, weatherClient, cfg.WeatherCacheTTL, cfg.WeatherAPITimeout, logger)
	matchService := services.NewMatchService(store, cricketClient, weatherService, cfg.MatchesCacheTTL, cfg.CricketAPITimeout, logger)

	if cfg.EnableBackgroundRefresh {
		refresher := services.NewRefresher(matchService, playerService, cfg.MatchesCacheTTL, logger)
		if err := refresher.Start(); err != nil {
			logger.Errorf("Failed to start background refresher: %v", err)
		}
		defer refresher.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(middleware.Recovery(logger, cfg.IsDevelopment()))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	apiGroup := router.Group("/api")
	api.SetupRoutes(apiGroup, api.Services{
		Store:   store,
		Players: playerService,
		Matches: matchService,
		Weather: weatherService,
	}, cfg)
	router.NoRoute(api.NotFound)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
