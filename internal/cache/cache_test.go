package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRespectsTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := New(clock)

	store.Set("k", "v", time.Minute)

	v, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	clock.Advance(time.Minute + time.Second)

	_, ok = store.Get("k")
	assert.False(t, ok, "expired entry must behave as absent")

	// The stale value survives for the last-known-good path.
	v, ok = store.GetStale("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestGetOrFetchCachesWithinTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := New(clock)

	var calls int32
	fetch := func() (int, error) {
		atomic.AddInt32(&calls, 1)
		return 42, nil
	}

	v, hit, err := GetOrFetch(store, "answer", time.Hour, fetch)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.False(t, hit)

	v, hit, err = GetOrFetch(store, "answer", time.Hour, fetch)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, hit)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "second call within TTL must not fetch")

	clock.Advance(2 * time.Hour)

	_, hit, err = GetOrFetch(store, "answer", time.Hour, fetch)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls), "expiry triggers exactly one new fetch")
}

func TestGetOrFetchCoalescesConcurrentMisses(t *testing.T) {
	store := New(clockwork.NewRealClock())

	var calls int32
	release := make(chan struct{})
	fetch := func() (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "result", nil
	}

	const waiters = 25
	var wg sync.WaitGroup
	results := make([]string, waiters)

	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := GetOrFetch(store, "shared", time.Minute, fetch)
			require.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Give the goroutines time to pile up behind the in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "concurrent misses must share one fetch")
	for _, v := range results {
		assert.Equal(t, "result", v)
	}
}

func TestGetOrFetchPropagatesError(t *testing.T) {
	store := New(clockwork.NewFakeClock())

	boom := errors.New("upstream down")
	_, _, err := GetOrFetch(store, "k", time.Minute, func() (int, error) {
		return 0, boom
	})
	require.ErrorIs(t, err, boom)

	// A failed fetch must not poison the cache.
	_, ok := store.Get("k")
	assert.False(t, ok)
}

func TestClearEmptiesStore(t *testing.T) {
	store := New(clockwork.NewFakeClock())
	store.Set(PlayersKey(), 1, time.Hour)
	store.Set(WeatherKey("Mumbai"), 2, time.Hour)

	store.Clear()

	_, ok := store.Get(PlayersKey())
	assert.False(t, ok)
	assert.Empty(t, store.WeatherCities())
}

func TestStatus(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := New(clock)

	st := store.Status("missing")
	assert.False(t, st.Cached)
	assert.Nil(t, st.LastFetch)

	store.Set("k", "v", time.Minute)
	clock.Advance(20 * time.Second)

	st = store.Status("k")
	require.True(t, st.Cached)
	require.NotNil(t, st.LastFetch)
	assert.EqualValues(t, (40 * time.Second).Milliseconds(), st.ExpiresIn)

	clock.Advance(time.Minute)
	st = store.Status("k")
	assert.True(t, st.Cached, "stale entries still report their fetch time")
	assert.Zero(t, st.ExpiresIn)
}

func TestWeatherKeyNormalizesCase(t *testing.T) {
	assert.Equal(t, WeatherKey("mumbai"), WeatherKey("Mumbai"))

	store := New(clockwork.NewFakeClock())
	store.Set(WeatherKey("Chennai"), 1, time.Hour)
	assert.Equal(t, []string{"chennai"}, store.WeatherCities())
}
