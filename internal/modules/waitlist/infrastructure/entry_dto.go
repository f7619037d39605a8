package infrastructure

import (
	"mesaYaDash/internal/modules/waitlist/domain"
	"mesaYaDash/internal/platform/rest"
	"mesaYaDash/internal/shared/normalization"
)

type EntryDTO struct {
	ID            rest.ID `json:"id,omitempty"`
	CustomerName  string  `json:"customer_name"`
	Phone         string  `json:"phone"`
	PartySize     int     `json:"party_size"`
	QuotedMinutes int     `json:"quoted_minutes"`
	CreatedAt     string  `json:"created_at,omitempty"`
	Status        string  `json:"status,omitempty"`
}

func FromBackend(dto EntryDTO) domain.Entry {
	created, _ := normalization.ParseTimestamp(dto.CreatedAt, nil)
	return domain.Entry{
		ID:            dto.ID.String(),
		CustomerName:  dto.CustomerName,
		Phone:         dto.Phone,
		PartySize:     dto.PartySize,
		QuotedMinutes: dto.QuotedMinutes,
		CreatedAt:     created,
		Status:        domain.NormalizeStatus(dto.Status),
	}
}

func ToBackend(e domain.Entry) EntryDTO {
	return EntryDTO{
		ID:            rest.ID(e.ID),
		CustomerName:  e.CustomerName,
		Phone:         e.Phone,
		PartySize:     e.PartySize,
		QuotedMinutes: e.QuotedMinutes,
		CreatedAt:     normalization.FormatTimestamp(e.CreatedAt),
		Status:        string(e.Status),
	}
}
