package port

import (
	"context"

	"mesaYaDash/internal/modules/waitlist/domain"
)

type WaitlistGateway interface {
	List(ctx context.Context) ([]domain.Entry, error)
	Add(ctx context.Context, form domain.EntryForm) (domain.Entry, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	Remove(ctx context.Context, id string) error
}
