package port

import (
	"context"

	"mesaYaDash/internal/modules/system/domain"
	"mesaYaDash/internal/shared/paging"
)

type ActivityGateway interface {
	List(ctx context.Context, query paging.PagedQuery) (domain.ActivityPage, error)
}

type HealthGateway interface {
	Health(ctx context.Context) (domain.SystemHealth, error)
}
