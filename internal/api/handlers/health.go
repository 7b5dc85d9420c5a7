package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cricket-pulse/pkg/config"
)

const apiVersion = "1.0.0"

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// GetHealth reports liveness plus which upstream API keys are configured.
// It never calls the upstreams; a missing key just means that provider will
// serve synthesized data.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Cricket stats API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   apiVersion,
		"port":      h.cfg.Port,
		"apis": gin.H{
			"weather": keyStatus(h.cfg.WeatherAPIKey),
			"cricket": keyStatus(h.cfg.CricketAPIKey),
		},
	})
}

func keyStatus(key string) string {
	if key == "" {
		return "missing"
	}
	return "configured"
}
