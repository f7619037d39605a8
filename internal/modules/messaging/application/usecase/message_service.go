package usecase

import (
	"context"

	"mesaYaDash/internal/modules/messaging/application/port"
	"mesaYaDash/internal/modules/messaging/domain"
	"mesaYaDash/internal/platform/querycache"
	"mesaYaDash/internal/shared/normalization"
)

type Service struct {
	gateway port.MessageGateway
	cache   *querycache.Cache
}

func NewService(gateway port.MessageGateway, cache *querycache.Cache) *Service {
	return &Service{gateway: gateway, cache: cache}
}

func (s *Service) Source() string { return s.gateway.Source() }

func (s *Service) List(ctx context.Context, cmd domain.ListMessagesCommand) (domain.Page, error) {
	query := cmd.Query()
	key := querycache.NewKey(normalization.EntityMessages, s.gateway.Source()+"|"+query.CanonicalKey())
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) (domain.Page, error) {
		return s.gateway.List(ctx, query)
	})
}
