package services

import (
	"sort"
	"strings"

	"cricket-pulse/internal/models"
)

const (
	// DefaultSearchLimit applies when the caller gives no usable limit.
	DefaultSearchLimit = 100
	// MaxSearchLimit is the hard cap on returned rows.
	MaxSearchLimit = 200
)

// SearchResult is a truncated player list plus the pre-truncation match count.
type SearchResult struct {
	Players []models.Player
	Total   int
	Limit   int
}

// SearchPlayers filters, sorts, and truncates a roster snapshot. Filtering
// order: free-text query against name, team, or role (case-insensitive
// substring), then exact team, then exact role. "All Teams"/"All Roles" and
// "all" are sentinels meaning no filter. Results are sorted by runs
// descending; limit values outside (0, MaxSearchLimit] fall back to the
// default or the cap.
func SearchPlayers(players []models.Player, query, team, role string, limit int) SearchResult {
	filtered := make([]models.Player, 0, len(players))
	filtered = append(filtered, players...)

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		matched := filtered[:0]
		for _, p := range filtered {
			if strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Team), q) ||
				strings.Contains(strings.ToLower(string(p.Role)), q) {
				matched = append(matched, p)
			}
		}
		filtered = matched
	}

	if !isAllSentinel(team, "All Teams") {
		matched := filtered[:0]
		for _, p := range filtered {
			if p.Team == team {
				matched = append(matched, p)
			}
		}
		filtered = matched
	}

	if !isAllSentinel(role, "All Roles") {
		matched := filtered[:0]
		for _, p := range filtered {
			if string(p.Role) == role {
				matched = append(matched, p)
			}
		}
		filtered = matched
	}

	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Runs > filtered[j].Runs })

	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	total := len(filtered)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return SearchResult{Players: filtered, Total: total, Limit: limit}
}

func isAllSentinel(value, sentinel string) bool {
	return value == "" || value == sentinel || strings.EqualFold(value, "all")
}
