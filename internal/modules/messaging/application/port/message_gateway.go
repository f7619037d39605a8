package port

import (
	"context"

	"mesaYaDash/internal/modules/messaging/domain"
	"mesaYaDash/internal/shared/paging"
)

// MessageGateway reads the outbound messaging log of one backend flavour.
type MessageGateway interface {
	Source() string
	List(ctx context.Context, query paging.PagedQuery) (domain.Page, error)
}
