package handlers

import (
	"github.com/gin-gonic/gin"

	"cricket-pulse/internal/services"
	"cricket-pulse/pkg/utils"
)

type AnalyticsHandler struct {
	players *services.PlayerService
}

func NewAnalyticsHandler(players *services.PlayerService) *AnalyticsHandler {
	return &AnalyticsHandler{players: players}
}

// GetAnalytics computes the aggregate view over the current roster snapshot.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	snap, _ := h.players.Players(c.Request.Context())
	utils.SendSuccess(c, services.BuildAnalytics(snap.Players))
}
