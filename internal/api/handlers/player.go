package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cricket-pulse/internal/services"
	"cricket-pulse/pkg/utils"
)

type PlayerHandler struct {
	players *services.PlayerService
}

func NewPlayerHandler(players *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{players: players}
}

// GetPlayers returns the full roster snapshot.
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	snap, cached := h.players.Players(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    snap.Players,
		"count":   len(snap.Players),
		"cached":  cached,
	})
}

// GetPlayer looks up one player by name, case-insensitively. The path
// parameter arrives URL-decoded. A miss includes near-match suggestions so
// typos on the dashboard are recoverable.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	name := c.Param("name")

	player, suggestions, ok := h.players.FindByName(c.Request.Context(), name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success":     false,
			"message":     "Player not found",
			"suggestions": suggestions,
		})
		return
	}
	utils.SendSuccess(c, player)
}
