package infrastructure

import (
	"mesaYaDash/internal/modules/reservations/domain"
	"mesaYaDash/internal/platform/rest"
)

// ReservationDTO mirrors the backend row. Field names match the UI, but ids
// may arrive as numbers.
type ReservationDTO struct {
	ID           rest.ID `json:"id,omitempty"`
	CustomerName string  `json:"customer_name"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email,omitempty"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	PartySize    int     `json:"party_size"`
	TableID      rest.ID `json:"table_id,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	Status       string  `json:"status,omitempty"`
}

func FromBackend(dto ReservationDTO) domain.Reservation {
	return domain.Reservation{
		ID:           dto.ID.String(),
		CustomerName: dto.CustomerName,
		Phone:        dto.Phone,
		Email:        dto.Email,
		Date:         dto.Date,
		Time:         trimSeconds(dto.Time),
		PartySize:    dto.PartySize,
		TableID:      dto.TableID.String(),
		Notes:        dto.Notes,
		Status:       domain.NormalizeStatus(dto.Status),
	}
}

func ToBackend(r domain.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:           rest.ID(r.ID),
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Email:        r.Email,
		Date:         r.Date,
		Time:         r.Time,
		PartySize:    r.PartySize,
		TableID:      rest.ID(r.TableID),
		Notes:        r.Notes,
		Status:       string(r.Status),
	}
}

// trimSeconds turns the backend HH:MM:SS into HH:MM.
func trimSeconds(value string) string {
	if len(value) == len("15:04:05") && value[2] == ':' && value[5] == ':' {
		return value[:5]
	}
	return value
}
