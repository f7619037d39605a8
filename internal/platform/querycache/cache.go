package querycache

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrFetchCancelled is returned by Fetch when its refresh was cancelled and
// there is no cached value to fall back to.
var ErrFetchCancelled = errors.New("querycache: fetch cancelled")

// ErrServedStale is joined with the fetch error when Fetch answers with the
// last cached value. The value returned alongside it is usable.
var ErrServedStale = errors.New("querycache: served cached value")

const defaultStaleTime = 30 * time.Second

type entry struct {
	value      any
	version    uint64
	fetchedAt  time.Time
	lastAccess time.Time
	stale      bool
}

// Cache is the client-side store of the last-known value of every entity
// collection. It is safe for concurrent use; subscribers are called outside
// the lock.
type Cache struct {
	mu        sync.Mutex
	entries   map[Key]*entry
	inflight  map[Key]map[uint64]context.CancelFunc
	epochs    map[Key]uint64
	version   uint64
	fetchSeq  uint64
	staleTime time.Duration
	now       func() time.Time
	metrics   *Metrics

	listenerMu  sync.RWMutex
	listeners   map[uint64]func(Event)
	listenerSeq uint64
}

// Option customises a Cache.
type Option func(*Cache)

// WithStaleTime sets how long a fetched value is served without refetching.
func WithStaleTime(d time.Duration) Option {
	return func(c *Cache) {
		if d >= 0 {
			c.staleTime = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMetrics attaches Prometheus counters.
func WithMetrics(m *Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries:   make(map[Key]*entry),
		inflight:  make(map[Key]map[uint64]context.CancelFunc),
		epochs:    make(map[Key]uint64),
		staleTime: defaultStaleTime,
		now:       time.Now,
		listeners: make(map[uint64]func(Event)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Metrics returns the attached counters, possibly nil.
func (c *Cache) Metrics() *Metrics { return c.metrics }

// Peek returns a copy of the entry without touching its access time.
func (c *Cache) Peek(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	return Entry{Value: e.value, Version: e.version, FetchedAt: e.fetchedAt, Stale: e.stale}, true
}

// Get returns the cached value regardless of freshness.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e.lastAccess = c.now()
	return e.value, true
}

// Set stores a fresh value and returns its version.
func (c *Cache) Set(key Key, value any) uint64 {
	c.mu.Lock()
	now := c.now()
	version := c.writeLocked(key, value, now, false)
	c.mu.Unlock()

	c.emit(Event{Kind: EventUpdated, Key: key, Version: version, At: now})
	return version
}

// Remove drops the key.
func (c *Cache) Remove(key Key) bool {
	c.mu.Lock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	c.mu.Unlock()

	if ok {
		c.emit(Event{Kind: EventRemoved, Key: key, At: c.now()})
	}
	return ok
}

// Invalidate marks every entry of the given groups stale so the next read
// refetches. It returns the number of entries marked.
func (c *Cache) Invalidate(groups ...string) int {
	wanted := groupSet(groups)
	if len(wanted) == 0 {
		return 0
	}

	c.mu.Lock()
	now := c.now()
	events := make([]Event, 0)
	for key, e := range c.entries {
		if _, ok := wanted[key.Group]; !ok {
			continue
		}
		e.stale = true
		events = append(events, Event{Kind: EventInvalidated, Key: key, Version: e.version, At: now})
	}
	c.mu.Unlock()

	for group := range wanted {
		c.metrics.invalidated(group)
	}
	slog.Debug("querycache invalidated", slog.Any("groups", groups), slog.Int("entries", len(events)))
	c.emit(events...)
	return len(events)
}

// Cancel aborts every in-flight fetch of the given groups. Results of
// cancelled fetches are discarded even if they complete.
func (c *Cache) Cancel(groups ...string) int {
	wanted := groupSet(groups)
	if len(wanted) == 0 {
		return 0
	}

	c.mu.Lock()
	cancels := make([]context.CancelFunc, 0)
	for key, fetches := range c.inflight {
		if _, ok := wanted[key.Group]; !ok {
			continue
		}
		c.epochs[key]++
		for _, cancel := range fetches {
			cancels = append(cancels, cancel)
		}
	}
	c.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	if len(cancels) > 0 {
		slog.Debug("querycache cancelled fetches", slog.Any("groups", groups), slog.Int("count", len(cancels)))
	}
	return len(cancels)
}

// Snapshot captures the current state of key.
func (c *Cache) Snapshot(key Key) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Snapshot{key: key}
	}
	return Snapshot{key: key, present: true, value: e.value, fetchedAt: e.fetchedAt, stale: e.stale, version: e.version}
}

// Restore puts back exactly the value, fetch time and staleness captured by
// s, removing the key if it was absent. The restored value gets a new version.
func (c *Cache) Restore(s Snapshot) uint64 {
	c.mu.Lock()
	now := c.now()
	if !s.present {
		_, existed := c.entries[s.key]
		delete(c.entries, s.key)
		c.mu.Unlock()
		if existed {
			c.emit(Event{Kind: EventRemoved, Key: s.key, At: now})
		}
		return 0
	}
	version := c.writeLocked(s.key, s.value, s.fetchedAt, s.stale)
	c.mu.Unlock()

	c.emit(Event{Kind: EventRestored, Key: s.key, Version: version, At: now})
	return version
}

// Prune removes entries not read for maxIdle and without in-flight fetches.
func (c *Cache) Prune(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	c.mu.Lock()
	now := c.now()
	cutoff := now.Add(-maxIdle)
	removed := make([]Event, 0)
	for key, e := range c.entries {
		if e.lastAccess.After(cutoff) || len(c.inflight[key]) > 0 {
			continue
		}
		delete(c.entries, key)
		delete(c.epochs, key)
		removed = append(removed, Event{Kind: EventRemoved, Key: key, At: now})
	}
	c.mu.Unlock()

	if len(removed) > 0 {
		slog.Debug("querycache pruned", slog.Int("entries", len(removed)))
	}
	c.emit(removed...)
	return len(removed)
}

// Keys lists the cached keys of group, sorted by scope.
func (c *Cache) Keys(group string) []Key {
	group = strings.ToLower(strings.TrimSpace(group))
	c.mu.Lock()
	keys := make([]Key, 0)
	for key := range c.entries {
		if key.Group == group {
			keys = append(keys, key)
		}
	}
	c.mu.Unlock()
	sort.Slice(keys, func(i, j int) bool { return keys[i].Scope < keys[j].Scope })
	return keys
}

// Subscribe registers fn for every change. The returned func unsubscribes.
func (c *Cache) Subscribe(fn func(Event)) func() {
	if fn == nil {
		return func() {}
	}
	c.listenerMu.Lock()
	c.listenerSeq++
	id := c.listenerSeq
	c.listeners[id] = fn
	c.listenerMu.Unlock()

	return func() {
		c.listenerMu.Lock()
		delete(c.listeners, id)
		c.listenerMu.Unlock()
	}
}

func (c *Cache) writeLocked(key Key, value any, fetchedAt time.Time, stale bool) uint64 {
	c.version++
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.value = value
	e.version = c.version
	e.fetchedAt = fetchedAt
	e.lastAccess = c.now()
	e.stale = stale
	return e.version
}

// fresh returns the value when it can be served without refetching.
func (c *Cache) fresh(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.stale {
		return nil, false
	}
	now := c.now()
	if c.staleTime > 0 && now.Sub(e.fetchedAt) > c.staleTime {
		return nil, false
	}
	e.lastAccess = now
	return e.value, true
}

// begin registers an in-flight fetch and returns its context, id and the
// epoch it must still match to be committed.
func (c *Cache) begin(ctx context.Context, key Key) (context.Context, uint64, uint64) {
	fetchCtx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchSeq++
	id := c.fetchSeq
	if c.inflight[key] == nil {
		c.inflight[key] = make(map[uint64]context.CancelFunc)
	}
	c.inflight[key][id] = cancel
	return fetchCtx, id, c.epochs[key]
}

// finish unregisters the fetch and stores value when epoch still matches.
// It reports whether the value was committed.
func (c *Cache) finish(key Key, id, epoch uint64, value any, store bool) (uint64, bool) {
	c.mu.Lock()
	if cancel, ok := c.inflight[key][id]; ok {
		cancel()
		delete(c.inflight[key], id)
		if len(c.inflight[key]) == 0 {
			delete(c.inflight, key)
		}
	}
	if c.epochs[key] != epoch {
		c.mu.Unlock()
		return 0, false
	}
	if !store {
		c.mu.Unlock()
		return 0, true
	}
	now := c.now()
	version := c.writeLocked(key, value, now, false)
	c.mu.Unlock()

	c.emit(Event{Kind: EventUpdated, Key: key, Version: version, At: now})
	return version, true
}

func (c *Cache) emit(events ...Event) {
	if len(events) == 0 {
		return
	}
	c.listenerMu.RLock()
	listeners := make([]func(Event), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.listenerMu.RUnlock()

	for _, event := range events {
		for _, fn := range listeners {
			func() {
				defer func() {
					if r := recover(); r != nil {
						slog.Warn("querycache listener panic", slog.String("key", event.Key.String()), slog.Any("error", r))
					}
				}()
				fn(event)
			}()
		}
	}
}

func groupSet(groups []string) map[string]struct{} {
	set := make(map[string]struct{}, len(groups))
	for _, group := range groups {
		if trimmed := strings.ToLower(strings.TrimSpace(group)); trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return set
}
