package models

// Role classifies a player within a squad.
type Role string

const (
	RoleBatsman      Role = "Batsman"
	RoleBowler       Role = "Bowler"
	RoleWicketkeeper Role = "Wicketkeeper"
	RoleAllRounder   Role = "All-rounder"
)

// Roles lists every valid role, in the order the synthesizer draws from.
var Roles = []Role{RoleBatsman, RoleBowler, RoleWicketkeeper, RoleAllRounder}

// Player is a single roster entry. Name is unique within a snapshot.
type Player struct {
	Name    string `json:"name"`
	Team    string `json:"team"`
	Role    Role   `json:"role"`
	Matches int    `json:"matches"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
	Venue   string `json:"venue"` // "Ground, City"
}
