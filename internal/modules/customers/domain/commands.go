package domain

import (
	"strings"

	"mesaYaDash/internal/shared/paging"
)

// ListCustomersCommand represents the filters of the CRM view.
type ListCustomersCommand struct {
	Search string `query:"search"`
	Tier   string `query:"tier"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

func (c ListCustomersCommand) Query() paging.PagedQuery {
	q := paging.PagedQuery{Page: c.Page, Limit: c.Limit, Search: c.Search}
	if tier := NormalizeTier(c.Tier); tier != TierUnknown {
		q = q.WithFilter("tier", string(tier))
	}
	return q.Normalize()
}

// CustomerForm is the create/edit dialog payload.
type CustomerForm struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Phone       string   `json:"phone" validate:"required,phone"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Tier        string   `json:"tier" validate:"omitempty,oneof=regular frecuente vip"`
	Preferences []string `json:"preferences" validate:"max=20,dive,max=60"`
	Notes       string   `json:"notes" validate:"max=1000"`
}

// Customer converts the form into the entity it describes.
func (f CustomerForm) Customer(id string) Customer {
	tier := NormalizeTier(f.Tier)
	if tier == TierUnknown {
		tier = TierRegular
	}
	prefs := make([]string, 0, len(f.Preferences))
	for _, p := range f.Preferences {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			prefs = append(prefs, trimmed)
		}
	}
	return Customer{
		ID:          id,
		Name:        strings.TrimSpace(f.Name),
		Phone:       f.Phone,
		Email:       f.Email,
		Tier:        tier,
		Preferences: prefs,
		Notes:       f.Notes,
	}
}
