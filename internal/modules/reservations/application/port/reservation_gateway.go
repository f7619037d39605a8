package port

import (
	"context"

	"mesaYaDash/internal/modules/reservations/domain"
	"mesaYaDash/internal/shared/paging"
)

// ReservationGateway reads and mutates reservations on the REST backend.
type ReservationGateway interface {
	List(ctx context.Context, query paging.PagedQuery) (domain.Page, error)
	Get(ctx context.Context, id string) (domain.Reservation, error)
	Create(ctx context.Context, form domain.ReservationForm) (domain.Reservation, error)
	Update(ctx context.Context, id string, form domain.ReservationForm) (domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	Delete(ctx context.Context, id string) error
}
