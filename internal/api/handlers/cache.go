package handlers

import (
	"github.com/gin-gonic/gin"

	"cricket-pulse/internal/cache"
	"cricket-pulse/pkg/utils"
)

type CacheHandler struct {
	store *cache.Store
}

func NewCacheHandler(store *cache.Store) *CacheHandler {
	return &CacheHandler{store: store}
}

// ClearCache drops every cached entry. The next request per key pays for a
// full refresh; useful in development and after roster file edits.
func (h *CacheHandler) ClearCache(c *gin.Context) {
	h.store.Clear()
	utils.SendMessage(c, "Cache cleared successfully")
}

// GetCacheStatus reports freshness per resource and which cities currently
// hold a weather entry.
func (h *CacheHandler) GetCacheStatus(c *gin.Context) {
	cities := h.store.WeatherCities()
	utils.SendSuccess(c, gin.H{
		"players": h.store.Status(cache.PlayersKey()),
		"matches": h.store.Status(cache.MatchesKey()),
		"weather": gin.H{
			"cached": len(cities),
			"cities": cities,
		},
	})
}
