package domain

import (
	"errors"
	"strings"
	"time"

	"mesaYaDash/internal/shared/paging"
)

var ErrUnknownSource = errors.New("unknown messaging source")

type Status string

const (
	StatusUnknown   Status = ""
	StatusSent      Status = "enviado"
	StatusDelivered Status = "entregado"
	StatusRead      Status = "leido"
	StatusFailed    Status = "fallido"
)

var knownStatuses = map[string]Status{
	"enviado":   StatusSent,
	"sent":      StatusSent,
	"entregado": StatusDelivered,
	"delivered": StatusDelivered,
	"leido":     StatusRead,
	"leído":     StatusRead,
	"read":      StatusRead,
	"fallido":   StatusFailed,
	"failed":    StatusFailed,
	"error":     StatusFailed,
}

func NormalizeStatus(value string) Status {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if status, ok := knownStatuses[trimmed]; ok {
		return status
	}
	return Status(trimmed)
}

func (s Status) Known() bool {
	switch s {
	case StatusSent, StatusDelivered, StatusRead, StatusFailed:
		return true
	default:
		return false
	}
}

// MessageLog is one outbound notification (reminder, confirmation) sent to a guest.
type MessageLog struct {
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
	To       string    `json:"to"`
	Template string    `json:"template"`
	Status   Status    `json:"status"`
	Error    string    `json:"error,omitempty"`
}

type Page struct {
	Items []MessageLog `json:"items"`
	Total int          `json:"total"`
}

// FailureRate is the share of failed messages on the page.
func (p Page) FailureRate() float64 {
	if len(p.Items) == 0 {
		return 0
	}
	failed := 0
	for _, m := range p.Items {
		if m.Status == StatusFailed {
			failed++
		}
	}
	return float64(failed) / float64(len(p.Items))
}

type ListMessagesCommand struct {
	Status string `query:"status"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

func (c ListMessagesCommand) Query() paging.PagedQuery {
	q := paging.PagedQuery{Page: c.Page, Limit: c.Limit}
	if status := NormalizeStatus(c.Status); status != StatusUnknown {
		q = q.WithFilter("status", string(status))
	}
	return q.Normalize()
}
