package handlers

import (
	"github.com/gin-gonic/gin"

	"cricket-pulse/internal/services"
	"cricket-pulse/pkg/utils"
)

type WeatherHandler struct {
	weather *services.WeatherService
}

func NewWeatherHandler(weather *services.WeatherService) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

// GetWeather returns current conditions for a city. Lookups never fail; a
// broken upstream degrades to stale or synthesized data.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	city := c.Param("city")

	result, _ := h.weather.ForVenue(c.Request.Context(), "Stadium, "+city)
	utils.SendSuccess(c, result.Snapshot)
}
