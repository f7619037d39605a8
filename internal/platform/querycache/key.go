package querycache

import (
	"strings"
	"time"
)

const (
	keyDelimiter = ":"
	// ScopeAll is the scope used by collections that are read without parameters.
	ScopeAll = "all"
)

// Key identifies one cached value: the entity group it belongs to plus a
// scope describing the query parameters.
type Key struct {
	Group string
	Scope string
}

// NewKey builds a normalized key. Empty scopes collapse to ScopeAll.
func NewKey(group, scope string) Key {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		scope = ScopeAll
	}
	return Key{Group: strings.ToLower(strings.TrimSpace(group)), Scope: scope}
}

func (k Key) String() string {
	return k.Group + keyDelimiter + k.Scope
}

// EventKind describes a change notified to subscribers.
type EventKind string

const (
	EventUpdated     EventKind = "updated"
	EventInvalidated EventKind = "invalidated"
	EventRestored    EventKind = "restored"
	EventRemoved     EventKind = "removed"
)

// Event is delivered to subscribers after the cache lock is released.
type Event struct {
	Kind    EventKind
	Key     Key
	Version uint64
	At      time.Time
}

// Entry is a copy of a cached value with its bookkeeping.
type Entry struct {
	Value     any
	Version   uint64
	FetchedAt time.Time
	Stale     bool
}

// Snapshot captures the state of one key so it can be restored exactly.
type Snapshot struct {
	key       Key
	present   bool
	value     any
	fetchedAt time.Time
	stale     bool
	version   uint64
}

// Key returns the snapshotted key.
func (s Snapshot) Key() Key { return s.key }

// Present reports whether the key held a value when the snapshot was taken.
func (s Snapshot) Present() bool { return s.present }

// Value returns the snapshotted value, nil when absent.
func (s Snapshot) Value() any { return s.value }

// Version returns the version of the snapshotted value.
func (s Snapshot) Version() uint64 { return s.version }
