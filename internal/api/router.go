package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"cricket-pulse/internal/api/handlers"
	"cricket-pulse/internal/cache"
	"cricket-pulse/internal/services"
	"cricket-pulse/pkg/config"
)

// Services is everything the route table needs, wired in main.
type Services struct {
	Store   *cache.Store
	Players *services.PlayerService
	Matches *services.MatchService
	Weather *services.WeatherService
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, svcs Services, cfg *config.Config) {
	healthHandler := handlers.NewHealthHandler(cfg)
	playerHandler := handlers.NewPlayerHandler(svcs.Players)
	matchHandler := handlers.NewMatchHandler(svcs.Matches, svcs.Players)
	weatherHandler := handlers.NewWeatherHandler(svcs.Weather)
	searchHandler := handlers.NewSearchHandler(svcs.Players)
	analyticsHandler := handlers.NewAnalyticsHandler(svcs.Players)
	cacheHandler := handlers.NewCacheHandler(svcs.Store)

	group.GET("/health", healthHandler.GetHealth)

	// Roster endpoints
	group.GET("/players", playerHandler.GetPlayers)
	group.GET("/player/:name", playerHandler.GetPlayer)
	group.GET("/search/players", searchHandler.SearchPlayers)
	group.GET("/analytics", analyticsHandler.GetAnalytics)

	// Live data endpoints
	group.GET("/live-matches", matchHandler.GetLiveMatches)
	group.GET("/match/:id", matchHandler.GetMatch)
	group.GET("/weather/:city", weatherHandler.GetWeather)

	// Cache introspection (useful for development)
	group.POST("/cache/clear", cacheHandler.ClearCache)
	group.GET("/cache/status", cacheHandler.GetCacheStatus)
}

// NotFound is the structured 404 for unknown routes under the API prefix.
func NotFound(c *gin.Context) {
	c.JSON(404, gin.H{
		"success": false,
		"message": fmt.Sprintf("API endpoint %s not found", c.Request.URL.Path),
	})
}
