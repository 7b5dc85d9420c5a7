package services

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"cricket-pulse/internal/cache"
	"cricket-pulse/internal/models"
	"cricket-pulse/internal/providers"
)

const defaultCity = "Mumbai"

var fallbackCities = []string{"Mumbai", "Chennai", "Bengaluru", "Delhi", "Kolkata"}

var fallbackConditions = []string{"Clear Sky", "Partly Cloudy", "Overcast", "Light Rain"}

// WeatherResult carries a fully-populated snapshot plus where it came from.
type WeatherResult struct {
	Snapshot models.WeatherSnapshot
	Origin   Origin
	Reason   string
}

// WeatherService resolves a venue to a city and serves current conditions
// from a per-city TTL cache. Lookups never fail: an upstream error degrades
// to the last known good value for the city, then to a synthetic snapshot.
type WeatherService struct {
	cache   *cache.Store
	client  *providers.OpenWeatherClient
	ttl     time.Duration
	timeout time.Duration
	logger  *logrus.Logger
}

func NewWeatherService(store *cache.Store, client *providers.OpenWeatherClient, ttl, timeout time.Duration, logger *logrus.Logger) *WeatherService {
	return &WeatherService{
		cache:   store,
		client:  client,
		ttl:     ttl,
		timeout: timeout,
		logger:  logger,
	}
}

// CityFromVenue extracts the city segment from a "Ground, City" venue string:
// the second comma-delimited token, else the first, else a default.
func CityFromVenue(venue string) string {
	parts := strings.Split(venue, ",")
	if len(parts) > 1 {
		if city := strings.TrimSpace(parts[1]); city != "" {
			return city
		}
	}
	if city := strings.TrimSpace(parts[0]); city != "" {
		return city
	}
	return defaultCity
}

// ForVenue returns weather for a venue's city. The bool reports a cache hit.
func (s *WeatherService) ForVenue(ctx context.Context, venue string) (WeatherResult, bool) {
	city := CityFromVenue(venue)
	key := cache.WeatherKey(city)

	result, hit, err := cache.GetOrFetch(s.cache, key, s.ttl, func() (WeatherResult, error) {
		return s.fetch(ctx, city, key), nil
	})
	if err != nil {
		// fetch never errors; terminal fallback regardless.
		s.logger.Errorf("weather cache fetch for %s: %v", city, err)
		return s.synthesize(err.Error()), false
	}
	return result, hit
}

func (s *WeatherService) fetch(ctx context.Context, city, key string) WeatherResult {
	if s.client != nil && s.client.Configured() {
		fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		obs, err := s.client.CurrentWeather(fetchCtx, city)
		if err == nil {
			return WeatherResult{
				Snapshot: mapObservation(obs, city),
				Origin:   OriginUpstream,
			}
		}

		s.logger.Warnf("Weather fetch failed for %s, degrading: %v", city, err)
		if stale, ok := cache.Stale[WeatherResult](s.cache, key); ok {
			return WeatherResult{
				Snapshot: stale.Snapshot,
				Origin:   OriginStale,
				Reason:   err.Error(),
			}
		}
		return s.synthesize(err.Error())
	}

	return s.synthesize("weather api not configured")
}

// mapObservation turns a normalized upstream observation into the wire
// snapshot. Every field has an explicit default so a partial payload still
// yields a complete snapshot.
func mapObservation(obs providers.WeatherObservation, requestedCity string) models.WeatherSnapshot {
	snap := models.WeatherSnapshot{
		Temp:      obs.TempRounded(),
		Condition: obs.Description,
		Humidity:  obs.Humidity,
		WindSpeed: obs.WindKmh(),
		Icon:      obs.Icon,
		City:      obs.City,
	}
	if snap.Condition == "" {
		snap.Condition = fallbackConditions[0]
	}
	if snap.Icon == "" {
		snap.Icon = "01d"
	}
	if snap.City == "" {
		snap.City = requestedCity
	}
	return snap
}

// synthesize builds a plausible snapshot from the fixed pools: 20-34°C,
// 40-79% humidity, 5-19 km/h wind.
func (s *WeatherService) synthesize(reason string) WeatherResult {
	return WeatherResult{
		Snapshot: models.WeatherSnapshot{
			Temp:      rand.Intn(15) + 20,
			Condition: fallbackConditions[rand.Intn(len(fallbackConditions))],
			Humidity:  rand.Intn(40) + 40,
			WindSpeed: rand.Intn(15) + 5,
			Icon:      "01d",
			City:      fallbackCities[rand.Intn(len(fallbackCities))],
		},
		Origin: OriginSynthetic,
		Reason: reason,
	}
}
