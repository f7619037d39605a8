package domain

import "mesaYaDash/internal/shared/paging"

// ListReservationsCommand represents the filters of the reservations view.
type ListReservationsCommand struct {
	Date   string `query:"date" validate:"omitempty,ymd"`
	Status string `query:"status"`
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// Query converts the command into the shared paging query.
func (c ListReservationsCommand) Query() paging.PagedQuery {
	q := paging.PagedQuery{Page: c.Page, Limit: c.Limit, Search: c.Search}
	q = q.WithFilter("date", c.Date)
	if status := NormalizeStatus(c.Status); status != StatusUnknown {
		q = q.WithFilter("status", string(status))
	}
	return q.Normalize()
}

// ReservationForm is the create/edit dialog payload.
type ReservationForm struct {
	CustomerName string `json:"customer_name" validate:"required,max=120"`
	Phone        string `json:"phone" validate:"required,phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	Date         string `json:"date" validate:"required,ymd"`
	Time         string `json:"time" validate:"required,hhmm"`
	PartySize    int    `json:"party_size" validate:"min=1,max=50"`
	TableID      string `json:"table_id"`
	Notes        string `json:"notes" validate:"max=500"`
}

// Reservation converts the form into the entity it describes.
func (f ReservationForm) Reservation(id string) Reservation {
	return Reservation{
		ID:           id,
		CustomerName: f.CustomerName,
		Phone:        f.Phone,
		Email:        f.Email,
		Date:         f.Date,
		Time:         f.Time,
		PartySize:    f.PartySize,
		TableID:      f.TableID,
		Notes:        f.Notes,
		Status:       StatusPending,
	}
}

// UpdateStatusCommand moves one reservation through its lifecycle.
type UpdateStatusCommand struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
