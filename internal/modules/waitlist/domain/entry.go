package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrEntryNotFound = errors.New("waitlist entry not found")
	ErrMissingID     = errors.New("missing waitlist entry id")
	ErrInvalidStatus = errors.New("invalid waitlist status")
)

type Status string

const (
	StatusUnknown   Status = ""
	StatusWaiting   Status = "esperando"
	StatusNotified  Status = "notificado"
	StatusSeated    Status = "sentado"
	StatusCancelled Status = "cancelado"
)

var knownStatuses = map[string]Status{
	"esperando":  StatusWaiting,
	"waiting":    StatusWaiting,
	"notificado": StatusNotified,
	"notified":   StatusNotified,
	"sentado":    StatusSeated,
	"seated":     StatusSeated,
	"cancelado":  StatusCancelled,
	"cancelled":  StatusCancelled,
	"canceled":   StatusCancelled,
}

func NormalizeStatus(value any) Status {
	s, ok := value.(string)
	if !ok {
		return StatusUnknown
	}
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if status, ok := knownStatuses[trimmed]; ok {
		return status
	}
	return Status(trimmed)
}

func (s Status) Known() bool {
	switch s {
	case StatusWaiting, StatusNotified, StatusSeated, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether the party is still waiting for a table.
func (s Status) Active() bool {
	return s == StatusWaiting || s == StatusNotified
}

// Entry is a walk-in party waiting for a table.
type Entry struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	Phone         string    `json:"phone"`
	PartySize     int       `json:"party_size"`
	QuotedMinutes int       `json:"quoted_minutes"`
	CreatedAt     time.Time `json:"created_at"`
	Status        Status    `json:"status"`
}

// Overdue reports whether the quoted wait has elapsed at now.
func (e Entry) Overdue(now time.Time) bool {
	if !e.Status.Active() || e.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(e.CreatedAt) > time.Duration(e.QuotedMinutes)*time.Minute
}

// Queue returns the active entries ordered by arrival.
func Queue(entries []Entry) []Entry {
	queue := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Status.Active() {
			queue = append(queue, e)
		}
	}
	sort.SliceStable(queue, func(i, j int) bool { return queue[i].CreatedAt.Before(queue[j].CreatedAt) })
	return queue
}

// WithStatus returns a copy of entries where id carries status.
func WithStatus(entries []Entry, id string, status Status) ([]Entry, bool) {
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		if entries[i].Status == status {
			return entries, false
		}
		next := make([]Entry, len(entries))
		copy(next, entries)
		next[i].Status = status
		return next, true
	}
	return entries, false
}
