package services

import (
	"math"
	"sort"
	"strings"

	"cricket-pulse/internal/models"
)

// topScorerCount is how many leading run-scorers the analytics view carries.
const topScorerCount = 15

// TeamStats is the per-team rollup.
type TeamStats struct {
	Team         string `json:"team"`
	TotalRuns    int    `json:"totalRuns"`
	TotalWickets int    `json:"totalWickets"`
	PlayerCount  int    `json:"playerCount"`
	AvgRuns      int    `json:"avgRuns"`
}

// VenueStats is the per-ground rollup; the ground is the first comma segment
// of the player's venue.
type VenueStats struct {
	Venue        string `json:"venue"`
	TotalRuns    int    `json:"totalRuns"`
	TotalWickets int    `json:"totalWickets"`
	Matches      int    `json:"matches"`
	PlayerCount  int    `json:"playerCount"`
}

// Analytics is the full computed view over one roster snapshot.
type Analytics struct {
	TopScorers          []models.Player     `json:"topScorers"`
	TeamStats           []TeamStats         `json:"teamStats"`
	VenueStats          []VenueStats        `json:"venueStats"`
	RoleStats           map[models.Role]int `json:"roleStats"`
	TotalPlayers        int                 `json:"totalPlayers"`
	TotalRuns           int                 `json:"totalRuns"`
	TotalWickets        int                 `json:"totalWickets"`
	AvgRunsPerPlayer    int                 `json:"avgRunsPerPlayer"`
	AvgWicketsPerPlayer int                 `json:"avgWicketsPerPlayer"`
}

// BuildAnalytics computes every rollup over the given snapshot. Pure: it
// never touches the network or mutates its input, and an empty roster yields
// all-zero aggregates.
func BuildAnalytics(players []models.Player) Analytics {
	a := Analytics{
		TopScorers:   TopScorers(players, topScorerCount),
		TeamStats:    TeamRollup(players),
		VenueStats:   VenueRollup(players),
		RoleStats:    RoleDistribution(players),
		TotalPlayers: len(players),
	}

	for _, p := range players {
		a.TotalRuns += p.Runs
		a.TotalWickets += p.Wickets
	}
	if len(players) > 0 {
		a.AvgRunsPerPlayer = roundDiv(a.TotalRuns, len(players))
		a.AvgWicketsPerPlayer = roundDiv(a.TotalWickets, len(players))
	}
	return a
}

// TopScorers returns the n highest run-scorers among players with runs > 0,
// descending.
func TopScorers(players []models.Player, n int) []models.Player {
	scorers := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.Runs > 0 {
			scorers = append(scorers, p)
		}
	}
	sort.SliceStable(scorers, func(i, j int) bool { return scorers[i].Runs > scorers[j].Runs })
	if len(scorers) > n {
		scorers = scorers[:n]
	}
	return scorers
}

// TeamRollup aggregates runs, wickets, and player counts by team, sorted by
// total runs descending for presentation.
func TeamRollup(players []models.Player) []TeamStats {
	byTeam := make(map[string]*TeamStats)
	order := make([]string, 0)
	for _, p := range players {
		ts, ok := byTeam[p.Team]
		if !ok {
			ts = &TeamStats{Team: p.Team}
			byTeam[p.Team] = ts
			order = append(order, p.Team)
		}
		ts.TotalRuns += p.Runs
		ts.TotalWickets += p.Wickets
		ts.PlayerCount++
	}

	stats := make([]TeamStats, 0, len(order))
	for _, team := range order {
		ts := byTeam[team]
		if ts.PlayerCount > 0 {
			ts.AvgRuns = roundDiv(ts.TotalRuns, ts.PlayerCount)
		}
		stats = append(stats, *ts)
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].TotalRuns > stats[j].TotalRuns })
	return stats
}

// VenueRollup aggregates by ground name, additionally summing matches played.
func VenueRollup(players []models.Player) []VenueStats {
	byVenue := make(map[string]*VenueStats)
	order := make([]string, 0)
	for _, p := range players {
		ground := strings.TrimSpace(strings.Split(p.Venue, ",")[0])
		vs, ok := byVenue[ground]
		if !ok {
			vs = &VenueStats{Venue: ground}
			byVenue[ground] = vs
			order = append(order, ground)
		}
		vs.TotalRuns += p.Runs
		vs.TotalWickets += p.Wickets
		vs.Matches += p.Matches
		vs.PlayerCount++
	}

	stats := make([]VenueStats, 0, len(order))
	for _, ground := range order {
		stats = append(stats, *byVenue[ground])
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].TotalRuns > stats[j].TotalRuns })
	return stats
}

// RoleDistribution counts players per role.
func RoleDistribution(players []models.Player) map[models.Role]int {
	dist := make(map[models.Role]int)
	for _, p := range players {
		dist[p.Role]++
	}
	return dist
}

func roundDiv(total, count int) int {
	return int(math.Round(float64(total) / float64(count)))
}
