package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cricket-pulse/internal/models"
)

func searchFixture() []models.Player {
	return []models.Player{
		{Name: "Virat Kohli", Team: "Royal Challengers Bangalore", Role: models.RoleBatsman, Runs: 741},
		{Name: "Rohit Sharma", Team: "Mumbai Indians", Role: models.RoleBatsman, Runs: 550},
		{Name: "Jasprit Bumrah", Team: "Mumbai Indians", Role: models.RoleBowler, Runs: 34},
		{Name: "MS Dhoni", Team: "Chennai Super Kings", Role: models.RoleWicketkeeper, Runs: 310},
	}
}

func TestSearchPlayersUnfiltered(t *testing.T) {
	result := SearchPlayers(searchFixture(), "", "", "", 0)
	require.Len(t, result.Players, 4)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, DefaultSearchLimit, result.Limit)
	assert.Equal(t, "Virat Kohli", result.Players[0].Name, "sorted by runs descending")
	assert.Equal(t, "Jasprit Bumrah", result.Players[3].Name)
}

func TestSearchPlayersQueryMatchesAnyField(t *testing.T) {
	byName := SearchPlayers(searchFixture(), "kohli", "", "", 0)
	require.Len(t, byName.Players, 1)
	assert.Equal(t, "Virat Kohli", byName.Players[0].Name)

	byTeam := SearchPlayers(searchFixture(), "mumbai", "", "", 0)
	assert.Len(t, byTeam.Players, 2)

	byRole := SearchPlayers(searchFixture(), "wicketkeeper", "", "", 0)
	require.Len(t, byRole.Players, 1)
	assert.Equal(t, "MS Dhoni", byRole.Players[0].Name)
}

func TestSearchPlayersExactFilters(t *testing.T) {
	result := SearchPlayers(searchFixture(), "", "Mumbai Indians", string(models.RoleBowler), 0)
	require.Len(t, result.Players, 1)
	assert.Equal(t, "Jasprit Bumrah", result.Players[0].Name)

	partial := SearchPlayers(searchFixture(), "", "Mumbai", "", 0)
	assert.Empty(t, partial.Players, "team filter is exact, not substring")
}

func TestSearchPlayersSentinels(t *testing.T) {
	for _, tt := range []struct{ team, role string }{
		{"All Teams", "All Roles"},
		{"all", "ALL"},
		{"", ""},
	} {
		result := SearchPlayers(searchFixture(), "", tt.team, tt.role, 0)
		assert.Len(t, result.Players, 4, "team=%q role=%q", tt.team, tt.role)
	}
}

func TestSearchPlayersLimit(t *testing.T) {
	roster := make([]models.Player, 0, 300)
	for i := 0; i < 300; i++ {
		roster = append(roster, models.Player{Name: fmt.Sprintf("Player %d", i), Runs: i})
	}

	capped := SearchPlayers(roster, "", "", "", 1000)
	assert.Len(t, capped.Players, MaxSearchLimit)
	assert.Equal(t, 300, capped.Total, "total counts matches before truncation")
	assert.Equal(t, MaxSearchLimit, capped.Limit)

	defaulted := SearchPlayers(roster, "", "", "", -5)
	assert.Len(t, defaulted.Players, DefaultSearchLimit)

	small := SearchPlayers(roster, "", "", "", 3)
	require.Len(t, small.Players, 3)
	assert.Equal(t, "Player 299", small.Players[0].Name)
}

func TestSearchPlayersDoesNotMutateInput(t *testing.T) {
	roster := searchFixture()
	SearchPlayers(roster, "", "", "", 0)
	assert.Equal(t, "Virat Kohli", roster[0].Name)
	assert.Equal(t, "MS Dhoni", roster[3].Name, "caller order is preserved")
}
