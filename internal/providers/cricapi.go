package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// TeamSummary is one side of a match as reported upstream.
type TeamSummary struct {
	Name      string
	ShortName string
}

// InningsScore is one innings line from the upstream scorecard.
type InningsScore struct {
	Runs    int
	Wickets int
	Overs   float64
}

// CurrentMatch is the normalized intermediate shape for one upstream match.
// Slices may be shorter than two entries when the payload is partial; the
// match service fills the gaps from its defaults table.
type CurrentMatch struct {
	ID        string
	Name      string
	MatchType string
	Status    string
	Venue     string
	StartedAt time.Time
	Teams     []TeamSummary
	Scores    []InningsScore
}

// CricAPIClient fetches currently live matches from CricAPI.
type CricAPIClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

func NewCricAPIClient(apiKey, baseURL string, timeout time.Duration, rps int, logger *logrus.Logger) *CricAPIClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "cricapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &CricAPIClient{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    baseURL,
		breaker:    cb,
		limiter:    rate.NewLimiter(rate.Limit(rps), rps),
		logger:     logger,
	}
}

func (c *CricAPIClient) Configured() bool {
	return c.apiKey != ""
}

// cricAPIResponse mirrors the fields we consume from /v1/currentMatches.
type cricAPIResponse struct {
	Status string `json:"status"`
	Data   []struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		MatchType   string   `json:"matchType"`
		Status      string   `json:"status"`
		Venue       string   `json:"venue"`
		DateTimeGMT string   `json:"dateTimeGMT"`
		Teams       []string `json:"teams"`
		TeamInfo    []struct {
			Name      string `json:"name"`
			ShortName string `json:"shortname"`
		} `json:"teamInfo"`
		Score []struct {
			Runs    float64 `json:"r"`
			Wickets float64 `json:"w"`
			Overs   float64 `json:"o"`
			Inning  string  `json:"inning"`
		} `json:"score"`
	} `json:"data"`
}

// CurrentMatches fetches and normalizes the upstream match list. It does no
// filtering; the match service decides which formats and statuses qualify.
func (c *CricAPIClient) CurrentMatches(ctx context.Context) ([]CurrentMatch, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("cricket rate limiter: %w", err)
	}

	values := url.Values{}
	values.Set("apikey", c.apiKey)
	values.Set("offset", "0")
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var payload cricAPIResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decoding cricket payload: %w", err)
		}
		return payload, nil
	})
	if err != nil {
		c.logger.Warnf("CricAPI fetch failed: %v", err)
		return nil, err
	}

	payload, ok := result.(cricAPIResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return mapCurrentMatches(payload), nil
}

// mapCurrentMatches converts the raw payload field by field, pairing the
// teamInfo and teams arrays so a name is available even when the richer
// teamInfo block is missing.
func mapCurrentMatches(payload cricAPIResponse) []CurrentMatch {
	matches := make([]CurrentMatch, 0, len(payload.Data))
	for _, m := range payload.Data {
		cm := CurrentMatch{
			ID:        m.ID,
			Name:      m.Name,
			MatchType: m.MatchType,
			Status:    m.Status,
			Venue:     m.Venue,
		}

		if ts, err := time.Parse(time.RFC3339, m.DateTimeGMT); err == nil {
			cm.StartedAt = ts.UTC()
		} else if ts, err := time.Parse("2006-01-02T15:04:05", m.DateTimeGMT); err == nil {
			cm.StartedAt = ts.UTC()
		}

		for _, info := range m.TeamInfo {
			cm.Teams = append(cm.Teams, TeamSummary{Name: info.Name, ShortName: info.ShortName})
		}
		// Fall back to the bare team-name list when teamInfo is absent.
		for i := len(cm.Teams); i < len(m.Teams); i++ {
			cm.Teams = append(cm.Teams, TeamSummary{Name: m.Teams[i]})
		}

		for _, sc := range m.Score {
			cm.Scores = append(cm.Scores, InningsScore{
				Runs:    int(sc.Runs),
				Wickets: int(sc.Wickets),
				Overs:   sc.Overs,
			})
		}

		matches = append(matches, cm)
	}
	return matches
}
