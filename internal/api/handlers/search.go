package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cricket-pulse/internal/services"
)

type SearchHandler struct {
	players *services.PlayerService
}

func NewSearchHandler(players *services.PlayerService) *SearchHandler {
	return &SearchHandler{players: players}
}

// SearchPlayers filters the roster by free-text query, team, and role.
// Unparseable limits fall back to the default; the cap is applied after.
func (h *SearchHandler) SearchPlayers(c *gin.Context) {
	q := c.Query("q")
	team := c.Query("team")
	role := c.Query("role")

	limit := services.DefaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	snap, _ := h.players.Players(c.Request.Context())
	result := services.SearchPlayers(snap.Players, q, team, role, limit)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Players,
		"count":   len(result.Players),
		"total":   result.Total,
		"filters": gin.H{
			"q":     q,
			"team":  team,
			"role":  role,
			"limit": result.Limit,
		},
	})
}
