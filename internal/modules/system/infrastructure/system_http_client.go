package infrastructure

import (
	"context"

	"mesaYaDash/internal/modules/system/domain"
	"mesaYaDash/internal/platform/rest"
	"mesaYaDash/internal/shared/paging"
)

const (
	activityPath = "/api/activity"
	healthPath   = "/api/system/health"
)

type HTTPGateway struct {
	client *rest.Client
}

func NewHTTPGateway(client *rest.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) List(ctx context.Context, query paging.PagedQuery) (domain.ActivityPage, error) {
	rows, total, err := rest.GetList[ActivityDTO](ctx, g.client, activityPath, query.ToURLValues(nil), "activity", "actividad", "logs")
	if err != nil {
		return domain.ActivityPage{}, err
	}
	page := domain.ActivityPage{Items: make([]domain.ActivityEntry, 0, len(rows)), Total: total}
	for _, row := range rows {
		page.Items = append(page.Items, ActivityFromBackend(row))
	}
	return page, nil
}

func (g *HTTPGateway) Health(ctx context.Context) (domain.SystemHealth, error) {
	dto, err := rest.GetItem[HealthDTO](ctx, g.client, healthPath, "health")
	if err != nil {
		return domain.SystemHealth{}, err
	}
	return HealthFromBackend(dto), nil
}
