package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// Store is a concurrency-safe in-memory cache with a per-entry TTL.
// Concurrent misses for the same key are coalesced into a single fetch so a
// burst of pollers never fans out into duplicate upstream calls.
//
// Stale entries are not evicted; they remain reachable through GetStale as a
// last-known-good value until overwritten or cleared.
type Store struct {
	mu    sync.RWMutex
	items map[string]entry
	group singleflight.Group
	clock clockwork.Clock
}

type entry struct {
	value     interface{}
	fetchedAt time.Time
	ttl       time.Duration
}

// KeyStatus describes one key's freshness for the cache status endpoint.
type KeyStatus struct {
	Cached    bool       `json:"cached"`
	LastFetch *time.Time `json:"lastFetch"`
	ExpiresIn int64      `json:"expiresIn"` // remaining TTL in milliseconds, 0 when stale or absent
}

// New creates an empty Store. The clock is injectable so TTL expiry can be
// driven in tests; production callers pass clockwork.NewRealClock().
func New(clock clockwork.Clock) *Store {
	return &Store{
		items: make(map[string]entry),
		clock: clock,
	}
}

// Get returns the value for key only while it is fresh.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[key]
	if !ok || !s.fresh(e) {
		return nil, false
	}
	return e.value, true
}

// GetStale returns the value for key regardless of age.
func (s *Store) GetStale(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with fetchedAt = now.
func (s *Store) Set(key string, value interface{}, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = entry{
		value:     value,
		fetchedAt: s.clock.Now(),
		ttl:       ttl,
	}
}

// Clear empties the store. In-flight fetches are unaffected; their results
// land in the fresh map.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]entry)
}

// Status reports freshness for a single key.
func (s *Store) Status(key string) KeyStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[key]
	if !ok {
		return KeyStatus{}
	}

	fetchedAt := e.fetchedAt
	st := KeyStatus{
		Cached:    true,
		LastFetch: &fetchedAt,
	}
	if remaining := e.ttl - s.clock.Since(e.fetchedAt); remaining > 0 {
		st.ExpiresIn = remaining.Milliseconds()
	}
	return st
}

// KeysWithPrefix returns every stored key starting with prefix, with the
// prefix trimmed. Used to enumerate per-city weather entries.
func (s *Store) KeysWithPrefix(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0)
	for k := range s.items {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, strings.TrimPrefix(k, prefix))
		}
	}
	return keys
}

func (s *Store) fresh(e entry) bool {
	return s.clock.Since(e.fetchedAt) < e.ttl
}

// getOrFetch is the untyped core of GetOrFetch. The singleflight group keys
// on the cache key, so however many goroutines miss at once, exactly one runs
// fetch and every waiter receives that same result.
func (s *Store) getOrFetch(key string, ttl time.Duration, fetch func() (interface{}, error)) (interface{}, bool, error) {
	if v, ok := s.Get(key); ok {
		return v, true, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// A waiter queued behind the winning fetch may arrive after the
		// write completed; re-check before fetching again.
		if v, ok := s.Get(key); ok {
			return v, nil
		}

		v, err := fetch()
		if err != nil {
			return nil, err
		}
		s.Set(key, v, ttl)
		return v, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v, false, nil
}

// GetOrFetch returns the fresh cached value for key, or runs fetch (coalesced
// across concurrent callers) and caches its result for ttl. The second return
// reports whether the value came from cache.
func GetOrFetch[T any](s *Store, key string, ttl time.Duration, fetch func() (T, error)) (T, bool, error) {
	v, hit, err := s.getOrFetch(key, ttl, func() (interface{}, error) {
		return fetch()
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, false, fmt.Errorf("cache entry %q holds %T", key, v)
	}
	return typed, hit, nil
}

// Stale returns the stale-or-fresh value for key, typed.
func Stale[T any](s *Store, key string) (T, bool) {
	v, ok := s.GetStale(key)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Cache key builders.

func PlayersKey() string { return "players" }

func MatchesKey() string { return "matches:live" }

func WeatherKey(city string) string { return weatherPrefix + strings.ToLower(city) }

// WeatherCities lists the cities currently held in the weather cache.
func (s *Store) WeatherCities() []string {
	return s.KeysWithPrefix(weatherPrefix)
}

const weatherPrefix = "weather:"
