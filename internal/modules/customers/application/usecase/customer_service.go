package usecase

import (
	"context"
	"strings"

	"mesaYaDash/internal/modules/customers/application/port"
	"mesaYaDash/internal/modules/customers/domain"
	"mesaYaDash/internal/platform/querycache"
	"mesaYaDash/internal/shared/forms"
	"mesaYaDash/internal/shared/normalization"
)

var Invalidates = []string{normalization.EntityCustomers, normalization.EntityActivity}

type Service struct {
	gateway port.CustomerGateway
	cache   *querycache.Cache
}

func NewService(gateway port.CustomerGateway, cache *querycache.Cache) *Service {
	return &Service{gateway: gateway, cache: cache}
}

// Source names the backend flavour in use.
func (s *Service) Source() string { return s.gateway.Source() }

func (s *Service) List(ctx context.Context, cmd domain.ListCustomersCommand) (domain.Page, error) {
	query := cmd.Query()
	key := querycache.NewKey(normalization.EntityCustomers, s.gateway.Source()+"|"+query.CanonicalKey())
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) (domain.Page, error) {
		return s.gateway.List(ctx, query)
	})
}

func (s *Service) Create(ctx context.Context, form domain.CustomerForm) (domain.Customer, error) {
	if err := forms.Check(form); err != nil {
		return domain.Customer{}, err
	}
	return querycache.Mutate(ctx, s.cache, normalization.EntityCustomers, func(ctx context.Context) (domain.Customer, error) {
		return s.gateway.Create(ctx, form)
	}, Invalidates...)
}

func (s *Service) Update(ctx context.Context, id string, form domain.CustomerForm) (domain.Customer, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Customer{}, domain.ErrMissingID
	}
	if err := forms.Check(form); err != nil {
		return domain.Customer{}, err
	}
	return querycache.Mutate(ctx, s.cache, normalization.EntityCustomers, func(ctx context.Context) (domain.Customer, error) {
		return s.gateway.Update(ctx, id, form)
	}, Invalidates...)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrMissingID
	}
	_, err := querycache.Mutate(ctx, s.cache, normalization.EntityCustomers, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.gateway.Delete(ctx, id)
	}, Invalidates...)
	return err
}
