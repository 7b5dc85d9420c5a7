package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sirupsen/logrus"

	"cricket-pulse/internal/cache"
	"cricket-pulse/internal/models"
)

// fallbackRosterSize is how many players the synthesizer produces when no
// roster file is available.
const fallbackRosterSize = 250

var teamPool = []string{
	"Mumbai Indians", "Chennai Super Kings", "Royal Challengers Bangalore",
	"Delhi Capitals", "Kolkata Knight Riders", "Punjab Kings",
	"Rajasthan Royals", "Sunrisers Hyderabad", "Gujarat Titans", "Lucknow Super Giants",
}

var venuePool = []string{
	"Wankhede Stadium, Mumbai",
	"M. A. Chidambaram Stadium, Chennai",
	"M. Chinnaswamy Stadium, Bengaluru",
	"Arun Jaitley Stadium, Delhi",
	"Eden Gardens, Kolkata",
	"PCA Stadium, Mohali",
	"Sawai Mansingh Stadium, Jaipur",
	"Rajiv Gandhi Stadium, Hyderabad",
	"Narendra Modi Stadium, Ahmedabad",
	"Ekana Stadium, Lucknow",
}

var firstNamePool = []string{"Virat", "Rohit", "MS", "Jasprit", "Hardik", "KL", "Rishabh", "Shikhar", "Yuzvendra", "Mohammed"}

var lastNamePool = []string{"Kohli", "Sharma", "Dhoni", "Bumrah", "Pandya", "Rahul", "Pant", "Dhawan", "Chahal", "Siraj"}

// RosterSnapshot is an immutable point-in-time roster. A refresh replaces the
// whole value in the cache; the slice is never mutated in place.
type RosterSnapshot struct {
	Players []models.Player
	Origin  Origin
	Reason  string
}

// PlayerService loads the player roster from a data file, synthesizing a
// fallback roster when none is available, and caches the result with a long
// TTL. It never returns an empty roster.
type PlayerService struct {
	cache     *cache.Store
	ttl       time.Duration
	filePaths []string
	logger    *logrus.Logger
}

func NewPlayerService(store *cache.Store, ttl time.Duration, extraPath string, logger *logrus.Logger) *PlayerService {
	paths := []string{}
	if extraPath != "" {
		paths = append(paths, extraPath)
	}
	paths = append(paths,
		"data/players.json",
		"data/ipl_players.json",
		"ipl_players.json",
	)

	return &PlayerService{
		cache:     store,
		ttl:       ttl,
		filePaths: paths,
		logger:    logger,
	}
}

// Players returns the current roster snapshot, loading or synthesizing it on
// a cache miss. The bool reports whether the snapshot came from cache.
func (s *PlayerService) Players(ctx context.Context) (RosterSnapshot, bool) {
	snap, hit, err := cache.GetOrFetch(s.cache, cache.PlayersKey(), s.ttl, func() (RosterSnapshot, error) {
		return s.loadRoster(), nil
	})
	if err != nil {
		// loadRoster never errors; keep the terminal fallback anyway.
		s.logger.Errorf("roster cache fetch: %v", err)
		return RosterSnapshot{Players: s.synthesizeRoster(), Origin: OriginSynthetic, Reason: err.Error()}, false
	}
	return snap, hit
}

// FindByName looks up a player case-insensitively. When not found, it returns
// up to three near-miss name suggestions.
func (s *PlayerService) FindByName(ctx context.Context, name string) (models.Player, []string, bool) {
	snap, _ := s.Players(ctx)

	for _, p := range snap.Players {
		if strings.EqualFold(name, p.Name) {
			return p, nil, true
		}
	}

	names := make([]string, len(snap.Players))
	for i, p := range snap.Players {
		names[i] = p.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(name, names)
	sort.Sort(ranks)

	suggestions := make([]string, 0, 3)
	for i := 0; i < len(ranks) && i < 3; i++ {
		suggestions = append(suggestions, ranks[i].Target)
	}
	return models.Player{}, suggestions, false
}

func (s *PlayerService) loadRoster() RosterSnapshot {
	for _, path := range s.filePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var players []models.Player
		if err := json.Unmarshal(data, &players); err != nil {
			s.logger.Warnf("roster file %s is malformed: %v", path, err)
			continue
		}
		if len(players) == 0 {
			continue
		}

		s.logger.Infof("Loaded %d players from %s", len(players), path)
		return RosterSnapshot{Players: players, Origin: OriginUpstream}
	}

	s.logger.Warn("No roster file found, generating fallback roster")
	return RosterSnapshot{
		Players: s.synthesizeRoster(),
		Origin:  OriginSynthetic,
		Reason:  "no roster file available",
	}
}

// synthesizeRoster builds a deterministic-shape roster from the fixed pools.
// Stat ranges scale by role: bowlers score little but take wickets, batsmen
// the inverse. Names are suffixed with an index so they stay unique.
func (s *PlayerService) synthesizeRoster() []models.Player {
	players := make([]models.Player, 0, fallbackRosterSize)
	for i := 0; i < fallbackRosterSize; i++ {
		role := models.Roles[rand.Intn(len(models.Roles))]

		runs := rand.Intn(800) + 100
		if role == models.RoleBowler {
			runs = rand.Intn(200)
		}
		wickets := rand.Intn(25) + 1
		if role == models.RoleBatsman {
			wickets = rand.Intn(5)
		}

		players = append(players, models.Player{
			Name: fmt.Sprintf("%s %s %d",
				firstNamePool[rand.Intn(len(firstNamePool))],
				lastNamePool[rand.Intn(len(lastNamePool))],
				i+1,
			),
			Team:    teamPool[rand.Intn(len(teamPool))],
			Role:    role,
			Matches: rand.Intn(16) + 1,
			Runs:    runs,
			Wickets: wickets,
			Venue:   venuePool[rand.Intn(len(venuePool))],
		})
	}
	return players
}
