package usecase

import (
	"context"
	"log/slog"

	"mesaYaDash/internal/modules/system/application/port"
	"mesaYaDash/internal/modules/system/domain"
	"mesaYaDash/internal/platform/querycache"
	"mesaYaDash/internal/shared/normalization"
)

var HealthKey = querycache.NewKey(normalization.EntityHealth, querycache.ScopeAll)

// Service exposes the read-only system views: the audit log and backend health.
type Service struct {
	activity port.ActivityGateway
	health   port.HealthGateway
	cache    *querycache.Cache
}

func NewService(activity port.ActivityGateway, health port.HealthGateway, cache *querycache.Cache) *Service {
	return &Service{activity: activity, health: health, cache: cache}
}

func (s *Service) Activity(ctx context.Context, cmd domain.ListActivityCommand) (domain.ActivityPage, error) {
	query := cmd.Query()
	key := querycache.NewKey(normalization.EntityActivity, query.CanonicalKey())
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) (domain.ActivityPage, error) {
		return s.activity.List(ctx, query)
	})
}

func (s *Service) Health(ctx context.Context) (domain.SystemHealth, error) {
	return querycache.Fetch(ctx, s.cache, HealthKey, s.loadHealth)
}

// RefreshHealth ignores freshness; the status screen polls it.
func (s *Service) RefreshHealth(ctx context.Context) (domain.SystemHealth, error) {
	return querycache.Refetch(ctx, s.cache, HealthKey, s.loadHealth)
}

func (s *Service) loadHealth(ctx context.Context) (domain.SystemHealth, error) {
	health, err := s.health.Health(ctx)
	if err != nil {
		return health, err
	}
	if failing := health.Failing(); len(failing) > 0 {
		names := make([]string, 0, len(failing))
		for _, svc := range failing {
			names = append(names, svc.Name)
		}
		slog.Warn("backend services not healthy", slog.String("status", string(health.Overall())), slog.Any("services", names))
	}
	return health, nil
}
