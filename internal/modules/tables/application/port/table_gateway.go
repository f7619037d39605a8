package port

import (
	"context"

	"mesaYaDash/internal/modules/tables/domain"
)

// TableGateway reads and mutates tables on the REST backend.
type TableGateway interface {
	List(ctx context.Context) ([]domain.Table, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	Create(ctx context.Context, form domain.TableForm) (domain.Table, error)
	Update(ctx context.Context, id string, form domain.TableForm) (domain.Table, error)
	Delete(ctx context.Context, id string) error
}
