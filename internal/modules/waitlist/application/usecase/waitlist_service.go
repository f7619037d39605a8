package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mesaYaDash/internal/modules/waitlist/application/port"
	"mesaYaDash/internal/modules/waitlist/domain"
	"mesaYaDash/internal/platform/querycache"
	"mesaYaDash/internal/shared/forms"
	"mesaYaDash/internal/shared/normalization"
)

// Invalidates lists the groups made stale by waitlist mutations. Seating a
// party changes the floor.
var Invalidates = []string{normalization.EntityWaitlist, normalization.EntityTables, normalization.EntityActivity}

var ListKey = querycache.NewKey(normalization.EntityWaitlist, querycache.ScopeAll)

type Service struct {
	gateway port.WaitlistGateway
	cache   *querycache.Cache
}

func NewService(gateway port.WaitlistGateway, cache *querycache.Cache) *Service {
	return &Service{gateway: gateway, cache: cache}
}

func (s *Service) List(ctx context.Context) ([]domain.Entry, error) {
	return querycache.Fetch(ctx, s.cache, ListKey, s.gateway.List)
}

// Queue returns the parties still waiting, oldest first.
func (s *Service) Queue(ctx context.Context) ([]domain.Entry, error) {
	entries, err := s.List(ctx)
	if err != nil && !querycache.IsServedStale(err) {
		return nil, err
	}
	return domain.Queue(entries), err
}

func (s *Service) Add(ctx context.Context, form domain.EntryForm) (domain.Entry, error) {
	if err := forms.Check(form); err != nil {
		return domain.Entry{}, err
	}
	return querycache.Mutate(ctx, s.cache, normalization.EntityWaitlist, func(ctx context.Context) (domain.Entry, error) {
		return s.gateway.Add(ctx, form)
	}, Invalidates...)
}

func (s *Service) ChangeStatus(ctx context.Context, cmd domain.UpdateStatusCommand) error {
	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		return domain.ErrMissingID
	}
	status := domain.NormalizeStatus(cmd.Status)
	if !status.Known() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, cmd.Status)
	}
	update := querycache.Update[[]domain.Entry]{
		Group: normalization.EntityWaitlist,
		Apply: func(current []domain.Entry) ([]domain.Entry, bool) { return domain.WithStatus(current, id, status) },
	}
	_, err := querycache.Optimistic(ctx, s.cache, update, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.gateway.UpdateStatus(ctx, id, status)
	}, Invalidates...)
	if err != nil {
		slog.Warn("waitlist status change failed", slog.String("entryId", id), slog.String("status", string(status)), slog.Any("error", err))
	}
	return err
}

func (s *Service) Remove(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrMissingID
	}
	_, err := querycache.Mutate(ctx, s.cache, normalization.EntityWaitlist, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.gateway.Remove(ctx, id)
	}, Invalidates...)
	return err
}
