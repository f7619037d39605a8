package querycache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func counting(value string, calls *int) FetchFunc[string] {
	return func(context.Context) (string, error) {
		*calls++
		return value, nil
	}
}

func TestNewKeyNormalizes(t *testing.T) {
	t.Parallel()

	key := NewKey(" Tables ", "")
	assert.Equal(t, "tables", key.Group)
	assert.Equal(t, ScopeAll, key.Scope)
	assert.Equal(t, "tables:all", key.String())
}

func TestFetchServesFreshValueUntilStale(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	cache := New(WithStaleTime(time.Minute), WithClock(clock.Now))
	key := NewKey("tables", "")
	calls := 0

	value, err := Fetch(context.Background(), cache, key, counting("v1", &calls))
	require.NoError(t, err)
	assert.Equal(t, "v1", value)

	value, err = Fetch(context.Background(), cache, key, counting("v2", &calls))
	require.NoError(t, err)
	assert.Equal(t, "v1", value)
	assert.Equal(t, 1, calls)

	clock.Advance(2 * time.Minute)
	value, err = Fetch(context.Background(), cache, key, counting("v3", &calls))
	require.NoError(t, err)
	assert.Equal(t, "v3", value)
	assert.Equal(t, 2, calls)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	t.Parallel()

	cache := New()
	tables := NewKey("tables", "")
	activity := NewKey("activity", "limit=20")
	cache.Set(tables, "tables-v1")
	cache.Set(activity, "activity-v1")

	assert.Equal(t, 1, cache.Invalidate("TABLES"))

	entry, ok := cache.Peek(tables)
	require.True(t, ok)
	assert.True(t, entry.Stale)
	entry, _ = cache.Peek(activity)
	assert.False(t, entry.Stale)

	calls := 0
	value, err := Fetch(context.Background(), cache, tables, counting("tables-v2", &calls))
	require.NoError(t, err)
	assert.Equal(t, "tables-v2", value)
	assert.Equal(t, 1, calls)
}

func TestFetchErrorFallsBackToCachedValue(t *testing.T) {
	t.Parallel()

	cache := New()
	key := NewKey("reservations", "date=2024-05-10")
	backendDown := errors.New("backend down")
	failing := func(context.Context) (string, error) { return "", backendDown }

	_, err := Fetch(context.Background(), cache, key, failing)
	assert.ErrorIs(t, err, backendDown)

	cache.Set(key, "last-known")
	cache.Invalidate("reservations")
	value, err := Fetch(context.Background(), cache, key, failing)
	assert.ErrorIs(t, err, ErrServedStale)
	assert.ErrorIs(t, err, backendDown)
	assert.True(t, IsServedStale(err))
	assert.Equal(t, "last-known", value)
}

func TestCancelDiscardsInFlightResult(t *testing.T) {
	t.Parallel()

	cache := New()
	key := NewKey("tables", "")
	started := make(chan struct{})
	release := make(chan struct{})

	type outcome struct {
		value string
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := Fetch(context.Background(), cache, key, func(context.Context) (string, error) {
			close(started)
			<-release
			return "server-before-mutation", nil
		})
		done <- outcome{value: value, err: err}
	}()

	<-started
	assert.Equal(t, 1, cache.Cancel("tables"))
	cache.Set(key, "optimistic")
	close(release)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, "optimistic", res.value)
	value, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "optimistic", value)
}

func TestCancelledFetchWithoutCacheReturnsError(t *testing.T) {
	t.Parallel()

	cache := New()
	key := NewKey("waitlist", "")
	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := Fetch(context.Background(), cache, key, func(ctx context.Context) (string, error) {
			close(started)
			<-ctx.Done()
			return "", ctx.Err()
		})
		done <- err
	}()

	<-started
	cache.Cancel("waitlist")
	err := <-done
	assert.ErrorIs(t, err, ErrFetchCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	_, ok := cache.Get(key)
	assert.False(t, ok)
}

func TestRestoreReturnsExactState(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	cache := New(WithClock(clock.Now))
	key := NewKey("customers", "")
	cache.Set(key, "original")
	cache.Invalidate("customers")
	before, _ := cache.Peek(key)
	snap := cache.Snapshot(key)

	clock.Advance(time.Second)
	cache.Set(key, "changed")
	version := cache.Restore(snap)

	after, ok := cache.Peek(key)
	require.True(t, ok)
	assert.Equal(t, "original", after.Value)
	assert.Equal(t, before.FetchedAt, after.FetchedAt)
	assert.True(t, after.Stale)
	assert.Greater(t, version, before.Version)

	absent := cache.Snapshot(NewKey("holidays", ""))
	cache.Set(NewKey("holidays", ""), "optimistic")
	assert.Zero(t, cache.Restore(absent))
	_, ok = cache.Get(NewKey("holidays", ""))
	assert.False(t, ok)
}

func TestSubscribeReceivesEventsUntilUnsubscribed(t *testing.T) {
	t.Parallel()

	cache := New()
	var events []Event
	unsubscribe := cache.Subscribe(func(e Event) { events = append(events, e) })
	key := NewKey("settings", "")

	cache.Set(key, "a")
	cache.Invalidate("settings")
	unsubscribe()
	cache.Set(key, "b")

	require.Len(t, events, 2)
	assert.Equal(t, EventUpdated, events[0].Kind)
	assert.Equal(t, EventInvalidated, events[1].Kind)
	assert.Equal(t, key, events[1].Key)
}

func TestListenerPanicDoesNotBreakCache(t *testing.T) {
	t.Parallel()

	cache := New()
	cache.Subscribe(func(Event) { panic("boom") })
	assert.NotPanics(t, func() { cache.Set(NewKey("tables", ""), 1) })
}

func TestPruneDropsIdleEntries(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	cache := New(WithClock(clock.Now))
	idle := NewKey("activity", "limit=20")
	busy := NewKey("tables", "")
	cache.Set(idle, 1)
	cache.Set(busy, 2)

	clock.Advance(10 * time.Minute)
	_, _ = cache.Get(busy)

	assert.Equal(t, 1, cache.Prune(5*time.Minute))
	assert.Empty(t, cache.Keys("activity"))
	assert.Equal(t, []Key{busy}, cache.Keys("tables"))
	assert.Zero(t, cache.Prune(0))
}

func TestMetricsCountHitsAndMisses(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics(prometheus.NewRegistry(), "test")
	cache := New(WithMetrics(metrics))
	key := NewKey("tables", "")
	calls := 0

	_, _ = Fetch(context.Background(), cache, key, counting("v1", &calls))
	_, _ = Fetch(context.Background(), cache, key, counting("v1", &calls))
	cache.Invalidate("tables")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.misses.WithLabelValues("tables")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.hits.WithLabelValues("tables")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.invalidations.WithLabelValues("tables")))
	assert.Same(t, metrics, cache.Metrics())
}
