package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cricket-pulse/internal/models"
	"cricket-pulse/internal/services"
	"cricket-pulse/pkg/utils"
)

type MatchHandler struct {
	matches *services.MatchService
	players *services.PlayerService
}

func NewMatchHandler(matches *services.MatchService, players *services.PlayerService) *MatchHandler {
	return &MatchHandler{matches: matches, players: players}
}

// matchDetail is a match plus the roster rows for both sides.
type matchDetail struct {
	models.Match
	Players []models.Player `json:"players"`
}

// GetLiveMatches returns the current live-match snapshot.
func (h *MatchHandler) GetLiveMatches(c *gin.Context) {
	snap, cached := h.matches.LiveMatches(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"data":        snap.Matches,
		"count":       len(snap.Matches),
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
		"cached":      cached,
	})
}

// GetMatch returns one match by id, enriched with the players of both teams.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid match id", err.Error())
		return
	}

	match, ok := h.matches.MatchByID(c.Request.Context(), id)
	if !ok {
		utils.SendNotFound(c, "Match not found")
		return
	}

	roster, _ := h.players.Players(c.Request.Context())
	teamPlayers := make([]models.Player, 0)
	for _, p := range roster.Players {
		if p.Team == match.Team1.Name || p.Team == match.Team2.Name {
			teamPlayers = append(teamPlayers, p)
		}
	}

	utils.SendSuccess(c, matchDetail{Match: match, Players: teamPlayers})
}
