package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"cricket-pulse/internal/cache"
	"cricket-pulse/internal/models"
	"cricket-pulse/internal/providers"
)

// maxLiveMatches caps how many upstream matches are mapped per refresh.
const maxLiveMatches = 4

// matchFormat is the only game format surfaced on the dashboard.
const matchFormat = "T20"

var liveStatuses = map[string]bool{
	string(models.StatusLive):       true,
	string(models.StatusInProgress): true,
}

// sideRanges is one row of the defaults table used both to fill missing
// sub-fields from a partial upstream payload and to build fully synthetic
// sides. Higher-scoring rows pair with longer overs and higher run rates so
// synthesized scoreboards stay internally consistent.
type sideRanges struct {
	runsMin, runsSpan   int
	wktsMin, wktsSpan   int
	oversMin, oversSpan int     // whole overs; balls digit is random 0-5
	rateMin, rateSpan   float64 // runs per over
	fixedOvers          string  // overrides the overs ranges when set
}

// sideDefaults indexes by innings: the side batting first has the bigger
// score, the chasing side trails with a higher required rate.
var sideDefaults = [2]sideRanges{
	{runsMin: 150, runsSpan: 50, wktsMin: 2, wktsSpan: 8, oversMin: 15, oversSpan: 5, rateMin: 6, rateSpan: 4},
	{runsMin: 120, runsSpan: 50, wktsMin: 3, wktsSpan: 8, oversMin: 12, oversSpan: 5, rateMin: 7, rateSpan: 3},
}

// completedInnings is the defaults row for a finished first innings in the
// second synthetic match.
var completedInnings = sideRanges{
	runsMin: 180, runsSpan: 50, wktsMin: 4, wktsSpan: 6, rateMin: 8, rateSpan: 2, fixedOvers: "20.0",
}

// MatchesSnapshot is an immutable live-match list; every match carries a
// populated weather field by the time the snapshot is cached.
type MatchesSnapshot struct {
	Matches []models.Match
	Origin  Origin
	Reason  string
}

// MatchService serves the current live matches from a short-TTL cache. On a
// miss it fetches from CricAPI, filters to live T20 games, fills partial
// scoreboards from the defaults table, falls back to fully synthetic matches
// when nothing qualifies, and enriches every match with venue weather before
// the snapshot is cached.
type MatchService struct {
	cache   *cache.Store
	client  *providers.CricAPIClient
	weather *WeatherService
	ttl     time.Duration
	timeout time.Duration
	logger  *logrus.Logger
}

func NewMatchService(store *cache.Store, client *providers.CricAPIClient, weather *WeatherService, ttl, timeout time.Duration, logger *logrus.Logger) *MatchService {
	return &MatchService{
		cache:   store,
		client:  client,
		weather: weather,
		ttl:     ttl,
		timeout: timeout,
		logger:  logger,
	}
}

// LiveMatches returns the current snapshot; the bool reports a cache hit.
// The list is never empty.
func (s *MatchService) LiveMatches(ctx context.Context) (MatchesSnapshot, bool) {
	snap, hit, err := cache.GetOrFetch(s.cache, cache.MatchesKey(), s.ttl, func() (MatchesSnapshot, error) {
		return s.refresh(ctx), nil
	})
	if err != nil {
		s.logger.Errorf("match cache fetch: %v", err)
		return s.syntheticSnapshot(ctx, err.Error()), false
	}
	return snap, hit
}

// MatchByID finds one match in the current snapshot.
func (s *MatchService) MatchByID(ctx context.Context, id int) (models.Match, bool) {
	snap, _ := s.LiveMatches(ctx)
	for _, m := range snap.Matches {
		if m.ID == id {
			return m, true
		}
	}
	return models.Match{}, false
}

func (s *MatchService) refresh(ctx context.Context) MatchesSnapshot {
	matches, reason := s.fetchUpstream(ctx)

	origin := OriginUpstream
	if len(matches) == 0 {
		if reason == "" {
			reason = "no qualifying live matches"
		}
		s.logger.Infof("Generating synthetic matches: %s", reason)
		matches = s.syntheticMatches()
		origin = OriginSynthetic
	}

	// Weather enrichment is a dependent fetch: the venues are only known
	// once the match list is final, and every match must carry weather
	// before the snapshot is cached.
	for i := range matches {
		result, _ := s.weather.ForVenue(ctx, matches[i].Venue)
		snapshot := result.Snapshot
		matches[i].Weather = &snapshot
	}

	return MatchesSnapshot{Matches: matches, Origin: origin, Reason: reason}
}

func (s *MatchService) fetchUpstream(ctx context.Context) ([]models.Match, string) {
	if s.client == nil || !s.client.Configured() {
		return nil, "cricket api not configured"
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	upstream, err := s.client.CurrentMatches(fetchCtx)
	if err != nil {
		return nil, err.Error()
	}

	matches := make([]models.Match, 0, maxLiveMatches)
	for idx, cm := range upstream {
		if cm.MatchType != matchFormat || !liveStatuses[cm.Status] {
			continue
		}
		matches = append(matches, s.mapMatch(idx, cm))
		if len(matches) == maxLiveMatches {
			break
		}
	}
	return matches, ""
}

// mapMatch converts one upstream match, filling every missing sub-field from
// the defaults table so the shape is complete even when the payload is not.
func (s *MatchService) mapMatch(idx int, cm providers.CurrentMatch) models.Match {
	m := models.Match{
		ID:     matchID(cm.ID, idx),
		Venue:  cm.Venue,
		Status: models.MatchStatus(cm.Status),
		Date:   cm.StartedAt,
	}
	if m.Venue == "" {
		m.Venue = "Stadium, City"
	}
	if m.Status == "" {
		m.Status = models.StatusLive
	}
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}

	m.Team1 = s.mapSide(cm, 0)
	m.Team2 = s.mapSide(cm, 1)
	return m
}

func (s *MatchService) mapSide(cm providers.CurrentMatch, innings int) models.MatchSide {
	defaults := sideDefaults[innings]
	side := synthSide(defaults)
	side.Name = fmt.Sprintf("Team %c", 'A'+innings)
	side.ShortName = fmt.Sprintf("TM%c", 'A'+innings)

	if innings < len(cm.Teams) {
		team := cm.Teams[innings]
		if team.Name != "" {
			side.Name = team.Name
			side.ShortName = shortName(team.ShortName, team.Name)
		}
	}

	if innings < len(cm.Scores) {
		score := cm.Scores[innings]
		side.Score = fmt.Sprintf("%d/%d", score.Runs, score.Wickets)
		side.Overs = fmt.Sprintf("%.1f", score.Overs)
		if score.Overs > 0 {
			side.RunRate = fmt.Sprintf("%.2f", float64(score.Runs)/score.Overs)
		}
	}
	return side
}

// shortName prefers the upstream abbreviation, degrades to a name prefix,
// and always fits the 4-character budget.
func shortName(abbrev, name string) string {
	s := abbrev
	if s == "" {
		s = name
	}
	runes := []rune(s)
	if abbrev == "" && len(runes) > 3 {
		runes = runes[:3]
	} else if len(runes) > 4 {
		runes = runes[:4]
	}
	return string(runes)
}

// matchID derives a stable positive id from the upstream string id, falling
// back to the list position.
func matchID(upstreamID string, idx int) int {
	if upstreamID == "" {
		return idx + 1
	}
	h := fnv.New32a()
	h.Write([]byte(upstreamID))
	return int(h.Sum32()&0x7fffffff) + 1
}

// synthSide generates one internally consistent scoreboard side from a
// defaults row.
func synthSide(r sideRanges) models.MatchSide {
	overs := r.fixedOvers
	if overs == "" {
		overs = fmt.Sprintf("%d.%d", rand.Intn(r.oversSpan)+r.oversMin, rand.Intn(6))
	}
	return models.MatchSide{
		Score:   fmt.Sprintf("%d/%d", rand.Intn(r.runsSpan)+r.runsMin, rand.Intn(r.wktsSpan)+r.wktsMin),
		Overs:   overs,
		RunRate: fmt.Sprintf("%.2f", rand.Float64()*r.rateSpan+r.rateMin),
	}
}

// syntheticMatches builds 1-2 complete fallback matches from the fixed team
// and venue pools.
func (s *MatchService) syntheticMatches() []models.Match {
	type namedTeam struct {
		name, short string
	}
	teams := []namedTeam{
		{"Mumbai Indians", "MI"}, {"Chennai Super Kings", "CSK"},
		{"Royal Challengers Bangalore", "RCB"}, {"Delhi Capitals", "DC"},
		{"Kolkata Knight Riders", "KKR"}, {"Punjab Kings", "PBKS"},
		{"Rajasthan Royals", "RR"}, {"Sunrisers Hyderabad", "SRH"},
		{"Gujarat Titans", "GT"}, {"Lucknow Super Giants", "LSG"},
	}
	rand.Shuffle(len(teams), func(i, j int) { teams[i], teams[j] = teams[j], teams[i] })

	venues := []string{
		"Wankhede Stadium, Mumbai",
		"M. A. Chidambaram Stadium, Chennai",
		"M. Chinnaswamy Stadium, Bengaluru",
		"Arun Jaitley Stadium, Delhi",
		"Eden Gardens, Kolkata",
		"Narendra Modi Stadium, Ahmedabad",
	}

	now := time.Now().UTC()
	side := func(t namedTeam, r sideRanges) models.MatchSide {
		s := synthSide(r)
		s.Name = t.name
		s.ShortName = t.short
		return s
	}

	return []models.Match{
		{
			ID:     1,
			Team1:  side(teams[0], sideDefaults[0]),
			Team2:  side(teams[1], sideDefaults[1]),
			Venue:  venues[rand.Intn(len(venues))],
			Status: models.StatusLive,
			Date:   now,
		},
		{
			ID:     2,
			Team1:  side(teams[2], completedInnings),
			Team2:  side(teams[3], sideDefaults[1]),
			Venue:  venues[rand.Intn(len(venues))],
			Status: models.StatusLive,
			Date:   now,
		},
	}
}

func (s *MatchService) syntheticSnapshot(ctx context.Context, reason string) MatchesSnapshot {
	matches := s.syntheticMatches()
	for i := range matches {
		result, _ := s.weather.ForVenue(ctx, matches[i].Venue)
		snapshot := result.Snapshot
		matches[i].Weather = &snapshot
	}
	return MatchesSnapshot{Matches: matches, Origin: OriginSynthetic, Reason: reason}
}
