package models

import "time"

// MatchStatus is the upstream-reported state of a match.
type MatchStatus string

const (
	StatusLive       MatchStatus = "Live"
	StatusInProgress MatchStatus = "Match in progress"
)

// MatchSide is one team's view of a live match scoreboard.
type MatchSide struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"` // <= 4 chars
	Score     string `json:"score"`     // "runs/wickets" or free text
	Overs     string `json:"overs"`     // "n.n"
	RunRate   string `json:"runRate"`
}

// Match is a live match enriched with venue weather. The weather field is
// attached after the match itself is resolved and is never nil on values
// returned to callers.
type Match struct {
	ID      int              `json:"id"`
	Team1   MatchSide        `json:"team1"`
	Team2   MatchSide        `json:"team2"`
	Venue   string           `json:"venue"`
	Status  MatchStatus      `json:"status"`
	Date    time.Time        `json:"date"`
	Weather *WeatherSnapshot `json:"weather"`
}
