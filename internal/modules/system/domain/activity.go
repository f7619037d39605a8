package domain

import (
	"time"

	"mesaYaDash/internal/shared/normalization"
	"mesaYaDash/internal/shared/paging"
)

// ActivityEntry is one line of the backend audit log.
type ActivityEntry struct {
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
	Actor    string    `json:"actor"`
	Entity   string    `json:"entity"`
	Action   string    `json:"action"`
	EntityID string    `json:"entity_id"`
	Detail   string    `json:"detail"`
}

type ActivityPage struct {
	Items []ActivityEntry `json:"items"`
	Total int             `json:"total"`
}

type ListActivityCommand struct {
	Entity string `query:"entity"`
	Action string `query:"action"`
	Since  string `query:"since"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// Query normalises the entity filter so "Mesa" and "tables" share a cache entry.
func (c ListActivityCommand) Query() paging.PagedQuery {
	q := paging.PagedQuery{Page: c.Page, Limit: c.Limit}
	if c.Entity != "" {
		q = q.WithFilter("entity", normalization.NormalizeEntity(c.Entity))
	}
	q = q.WithFilter("action", c.Action)
	q = q.WithFilter("since", c.Since)
	return q.Normalize()
}
