package port

import (
	"context"

	"mesaYaDash/internal/modules/customers/domain"
	"mesaYaDash/internal/shared/paging"
)

// CustomerGateway is implemented once per backend CRM flavour.
type CustomerGateway interface {
	Source() string
	List(ctx context.Context, query paging.PagedQuery) (domain.Page, error)
	Create(ctx context.Context, form domain.CustomerForm) (domain.Customer, error)
	Update(ctx context.Context, id string, form domain.CustomerForm) (domain.Customer, error)
	Delete(ctx context.Context, id string) error
}
