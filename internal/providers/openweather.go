package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ErrNotConfigured is returned when a client has no API key; callers treat it
// like any other upstream failure and fall back.
var ErrNotConfigured = errors.New("api key is not configured")

// WeatherObservation is the normalized intermediate shape produced from an
// OpenWeatherMap response before the service maps it onto a snapshot.
type WeatherObservation struct {
	TempC       float64
	Description string
	Humidity    int
	WindSpeedMS float64
	Icon        string
	City        string
}

// WindKmh converts the upstream m/s reading to rounded km/h.
func (o WeatherObservation) WindKmh() int {
	return int(math.Round(o.WindSpeedMS * 3.6))
}

// TempRounded is the display temperature in whole °C.
func (o WeatherObservation) TempRounded() int {
	return int(math.Round(o.TempC))
}

// OpenWeatherClient fetches current conditions from OpenWeatherMap.
type OpenWeatherClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewOpenWeatherClient creates a client with a bounded request timeout, a
// client-side rate limit, and a circuit breaker in front of the upstream.
func NewOpenWeatherClient(apiKey, baseURL string, timeout time.Duration, rps int, logger *logrus.Logger) *OpenWeatherClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherClient{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    baseURL,
		breaker:    cb,
		limiter:    rate.NewLimiter(rate.Limit(rps), rps),
		logger:     logger,
	}
}

// Configured reports whether an API key is present. The health endpoint
// reports this, not upstream reachability.
func (c *OpenWeatherClient) Configured() bool {
	return c.apiKey != ""
}

// openWeatherResponse mirrors the fields we consume from the upstream payload.
type openWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s with units=metric
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// CurrentWeather fetches and normalizes current conditions for a city.
func (c *OpenWeatherClient) CurrentWeather(ctx context.Context, city string) (WeatherObservation, error) {
	if !c.Configured() {
		return WeatherObservation{}, ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return WeatherObservation{}, fmt.Errorf("weather rate limiter: %w", err)
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")
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

		var payload openWeatherResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decoding weather payload: %w", err)
		}
		return payload, nil
	})
	if err != nil {
		c.logger.Warnf("OpenWeather fetch failed for %s: %v", city, err)
		return WeatherObservation{}, err
	}

	payload, ok := result.(openWeatherResponse)
	if !ok {
		return WeatherObservation{}, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return mapWeatherObservation(payload), nil
}

// mapWeatherObservation converts the raw payload field by field. Missing
// weather array entries degrade to empty description/icon; the service layer
// treats those as mappable, not as failures.
func mapWeatherObservation(payload openWeatherResponse) WeatherObservation {
	obs := WeatherObservation{
		TempC:       payload.Main.Temp,
		Humidity:    int(math.Round(payload.Main.Humidity)),
		WindSpeedMS: payload.Wind.Speed,
		City:        payload.Name,
	}
	if len(payload.Weather) > 0 {
		obs.Description = payload.Weather[0].Description
		obs.Icon = payload.Weather[0].Icon
	}
	return obs
}
