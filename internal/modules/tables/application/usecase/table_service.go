package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mesaYaDash/internal/modules/tables/application/port"
	"mesaYaDash/internal/modules/tables/domain"
	"mesaYaDash/internal/platform/querycache"
	"mesaYaDash/internal/shared/forms"
	"mesaYaDash/internal/shared/normalization"
)

// Invalidates lists the groups made stale by any table mutation.
var Invalidates = []string{normalization.EntityTables, normalization.EntityActivity}

// ListKey is the cache key of the floor view.
var ListKey = querycache.NewKey(normalization.EntityTables, querycache.ScopeAll)

// StatusChange reports a table before and after a status mutation.
type StatusChange struct {
	Before domain.Table
	After  domain.Table
}

type Service struct {
	gateway port.TableGateway
	cache   *querycache.Cache
}

func NewService(gateway port.TableGateway, cache *querycache.Cache) *Service {
	return &Service{gateway: gateway, cache: cache}
}

// List returns the floor, from cache while fresh.
func (s *Service) List(ctx context.Context) ([]domain.Table, error) {
	return querycache.Fetch(ctx, s.cache, ListKey, s.gateway.List)
}

// Refresh bypasses freshness and reloads the floor.
func (s *Service) Refresh(ctx context.Context) ([]domain.Table, error) {
	return querycache.Refetch(ctx, s.cache, ListKey, s.gateway.List)
}

func (s *Service) Get(ctx context.Context, id string) (domain.Table, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Table{}, domain.ErrMissingID
	}
	tables, err := s.List(ctx)
	if err != nil && !querycache.IsServedStale(err) {
		return domain.Table{}, err
	}
	table, ok := domain.Find(tables, id)
	if !ok {
		return domain.Table{}, fmt.Errorf("%w: %s", domain.ErrTableNotFound, id)
	}
	return table, err
}

// Summary counts tables per status.
func (s *Service) Summary(ctx context.Context) (map[domain.Status]int, error) {
	tables, err := s.List(ctx)
	if err != nil && !querycache.IsServedStale(err) {
		return nil, err
	}
	return domain.CountByStatus(tables), err
}

// ChangeStatus shows the new status immediately and reverts it exactly when
// the backend rejects the change. It is not retried.
func (s *Service) ChangeStatus(ctx context.Context, cmd domain.UpdateStatusCommand) (StatusChange, error) {
	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		return StatusChange{}, domain.ErrMissingID
	}
	status := domain.NormalizeStatus(cmd.Status)
	if !status.Known() {
		return StatusChange{}, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, cmd.Status)
	}

	change := StatusChange{}
	if cached, ok := querycache.Cached[[]domain.Table](s.cache, ListKey); ok {
		change.Before, _ = domain.Find(cached, id)
	}

	update := querycache.Update[[]domain.Table]{
		Group: normalization.EntityTables,
		Apply: func(current []domain.Table) ([]domain.Table, bool) {
			return domain.WithStatus(current, id, status)
		},
	}
	_, err := querycache.Optimistic(ctx, s.cache, update, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.gateway.UpdateStatus(ctx, id, status)
	}, Invalidates...)
	if err != nil {
		slog.Warn("table status change failed", slog.String("tableId", id), slog.String("status", string(status)), slog.Any("error", err))
		return change, err
	}

	change.After = change.Before
	change.After.ID = id
	change.After.Status = status
	slog.Info("table status changed", slog.String("tableId", id), slog.String("from", string(change.Before.Status)), slog.String("to", string(status)))
	return change, nil
}

func (s *Service) Create(ctx context.Context, form domain.TableForm) (domain.Table, error) {
	if err := forms.Check(form); err != nil {
		return domain.Table{}, err
	}
	return querycache.Mutate(ctx, s.cache, normalization.EntityTables, func(ctx context.Context) (domain.Table, error) {
		return s.gateway.Create(ctx, form)
	}, Invalidates...)
}

func (s *Service) Update(ctx context.Context, id string, form domain.TableForm) (domain.Table, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Table{}, domain.ErrMissingID
	}
	if err := forms.Check(form); err != nil {
		return domain.Table{}, err
	}
	return querycache.Mutate(ctx, s.cache, normalization.EntityTables, func(ctx context.Context) (domain.Table, error) {
		return s.gateway.Update(ctx, id, form)
	}, Invalidates...)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrMissingID
	}
	_, err := querycache.Mutate(ctx, s.cache, normalization.EntityTables, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.gateway.Delete(ctx, id)
	}, Invalidates...)
	return err
}
