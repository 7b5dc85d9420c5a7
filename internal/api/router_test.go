package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cricket-pulse/internal/api/middleware"
	"cricket-pulse/internal/cache"
	"cricket-pulse/internal/services"
	"cricket-pulse/pkg/config"
)

func newTestRouter(t *testing.T) (*gin.Engine, *cache.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.ErrorLevel)

	cfg := &config.Config{
		Port:        "8080",
		Env:         "development",
		CorsOrigins: []string{"*"},
	}

	store := cache.New(clockwork.NewFakeClock())
	players := services.NewPlayerService(store, time.Hour, "", logger)
	weather := services.NewWeatherService(store, nil, 10*time.Minute, 5*time.Second, logger)
	matches := services.NewMatchService(store, nil, weather, 30*time.Second, 10*time.Second, logger)

	router := gin.New()
	router.Use(middleware.Recovery(logger, cfg.IsDevelopment()))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	SetupRoutes(router.Group("/api"), Services{
		Store:   store,
		Players: players,
		Matches: matches,
		Weather: weather,
	}, cfg)
	router.NoRoute(NotFound)

	return router, store
}

func doRequest(t *testing.T, router *gin.Engine, method, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return w, body
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	apis, ok := body["apis"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "missing", apis["weather"])
	assert.Equal(t, "missing", apis["cricket"])
}

func TestPlayersEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/players")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(250), body["count"])
	assert.Equal(t, false, body["cached"])

	_, body = doRequest(t, router, http.MethodGet, "/api/players")
	assert.Equal(t, true, body["cached"], "second request is a cache hit")

	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	first, ok := data[0].(map[string]interface{})
	require.True(t, ok)
	for _, field := range []string{"name", "team", "role", "matches", "runs", "wickets", "venue"} {
		assert.Contains(t, first, field)
	}
}

func TestLiveMatchesEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/live-matches")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"], "no upstream yields the synthetic pair")
	assert.NotEmpty(t, body["lastUpdated"])

	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	match, ok := data[0].(map[string]interface{})
	require.True(t, ok)
	for _, field := range []string{"id", "team1", "team2", "venue", "status", "date", "weather"} {
		assert.Contains(t, match, field)
	}
	weather, ok := match["weather"].(map[string]interface{})
	require.True(t, ok, "matches always embed weather")
	assert.Contains(t, weather, "temp")
	assert.Contains(t, weather, "city")
}

func TestMatchDetailEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	// Synthetic match ids are 1 and 2.
	w, body := doRequest(t, router, http.MethodGet, "/api/match/1")
	assert.Equal(t, http.StatusOK, w.Code)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["id"])
	players, ok := data["players"].([]interface{})
	require.True(t, ok, "detail view merges the team rosters")

	team1 := data["team1"].(map[string]interface{})["name"]
	team2 := data["team2"].(map[string]interface{})["name"]
	for _, raw := range players {
		p := raw.(map[string]interface{})
		assert.Contains(t, []interface{}{team1, team2}, p["team"])
	}
}

func TestMatchDetailErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/match/999999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Match not found", body["message"])

	w, body = doRequest(t, router, http.MethodGet, "/api/match/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestWeatherEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/weather/Mumbai")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	for _, field := range []string{"temp", "condition", "humidity", "windSpeed", "icon", "city"} {
		assert.Contains(t, data, field)
	}
}

func TestPlayerEndpointNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/player/Nobody%20Atall")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Player not found", body["message"])
	assert.Contains(t, body, "suggestions")
}

func TestPlayerEndpointFindsSynthesizedPlayer(t *testing.T) {
	router, _ := newTestRouter(t)

	// Grab a real name from the roster, then look it up in a different case.
	_, body := doRequest(t, router, http.MethodGet, "/api/players")
	data := body["data"].([]interface{})
	name := data[0].(map[string]interface{})["name"].(string)

	w, body := doRequest(t, router, http.MethodGet, "/api/player/"+url.PathEscape(strings.ToUpper(name)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, name, body["data"].(map[string]interface{})["name"])
}

func TestSearchEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/search/players?team=Mumbai+Indians&limit=5")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	data := body["data"].([]interface{})
	assert.LessOrEqual(t, len(data), 5)
	for _, raw := range data {
		assert.Equal(t, "Mumbai Indians", raw.(map[string]interface{})["team"])
	}

	filters := body["filters"].(map[string]interface{})
	assert.Equal(t, float64(5), filters["limit"])

	_, body = doRequest(t, router, http.MethodGet, "/api/search/players?limit=9999")
	filters = body["filters"].(map[string]interface{})
	assert.Equal(t, float64(services.MaxSearchLimit), filters["limit"], "limit is capped")
}

func TestAnalyticsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/analytics")
	assert.Equal(t, http.StatusOK, w.Code)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	for _, field := range []string{"topScorers", "teamStats", "venueStats", "roleStats", "totalPlayers", "totalRuns", "totalWickets", "avgRunsPerPlayer", "avgWicketsPerPlayer"} {
		assert.Contains(t, data, field)
	}
	assert.Equal(t, float64(250), data["totalPlayers"])
	assert.Len(t, data["topScorers"], 15)
}

func TestCacheEndpoints(t *testing.T) {
	router, store := newTestRouter(t)

	// Warm two resources, then inspect.
	doRequest(t, router, http.MethodGet, "/api/players")
	doRequest(t, router, http.MethodGet, "/api/weather/Chennai")

	_, body := doRequest(t, router, http.MethodGet, "/api/cache/status")
	data := body["data"].(map[string]interface{})

	players := data["players"].(map[string]interface{})
	assert.Equal(t, true, players["cached"])
	assert.Greater(t, players["expiresIn"], float64(0))

	matches := data["matches"].(map[string]interface{})
	assert.Equal(t, false, matches["cached"])

	weather := data["weather"].(map[string]interface{})
	assert.Equal(t, float64(1), weather["cached"])
	assert.Contains(t, weather["cities"], "chennai")

	w, body := doRequest(t, router, http.MethodPost, "/api/cache/clear")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cache cleared successfully", body["message"])

	_, ok := store.Get(cache.PlayersKey())
	assert.False(t, ok)
}

func TestUnknownRoute(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/does-not-exist")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "/api/does-not-exist")
}
