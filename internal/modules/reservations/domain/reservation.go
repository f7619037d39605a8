package domain

import (
	"errors"
	"strings"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrMissingID           = errors.New("missing reservation id")
	ErrInvalidStatus       = errors.New("invalid reservation status")
)

// Status represents the lifecycle of a reservation as exposed by the REST API.
type Status string

const (
	StatusUnknown   Status = ""
	StatusPending   Status = "pendiente"
	StatusConfirmed Status = "confirmada"
	StatusSeated    Status = "sentada"
	StatusCompleted Status = "completada"
	StatusCancelled Status = "cancelada"
	StatusNoShow    Status = "no_show"
)

var knownStatuses = map[string]Status{
	"pendiente":  StatusPending,
	"pending":    StatusPending,
	"confirmada": StatusConfirmed,
	"confirmed":  StatusConfirmed,
	"sentada":    StatusSeated,
	"seated":     StatusSeated,
	"completada": StatusCompleted,
	"completed":  StatusCompleted,
	"cancelada":  StatusCancelled,
	"cancelled":  StatusCancelled,
	"canceled":   StatusCancelled,
	"no_show":    StatusNoShow,
	"no-show":    StatusNoShow,
	"noshow":     StatusNoShow,
}

// NormalizeStatus returns the canonical Status for the given input.
// Unknown statuses are lowercased and returned as-is to avoid data loss.
func NormalizeStatus(value any) Status {
	s, ok := value.(string)
	if !ok {
		return StatusUnknown
	}
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return StatusUnknown
	}
	if status, ok := knownStatuses[trimmed]; ok {
		return status
	}
	return Status(trimmed)
}

func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusSeated, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Reservation is a booking for a party at a given date and time.
type Reservation struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PartySize    int    `json:"party_size"`
	TableID      string `json:"table_id,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Status       Status `json:"status"`
}

// Page is one cached page of reservations.
type Page struct {
	Items []Reservation `json:"items"`
	Total int           `json:"total"`
}

// WithStatus returns a copy of p where reservation id carries status.
func (p Page) WithStatus(id string, status Status) (Page, bool) {
	for i := range p.Items {
		if p.Items[i].ID != id {
			continue
		}
		if p.Items[i].Status == status {
			return p, false
		}
		items := make([]Reservation, len(p.Items))
		copy(items, p.Items)
		items[i].Status = status
		return Page{Items: items, Total: p.Total}, true
	}
	return p, false
}
