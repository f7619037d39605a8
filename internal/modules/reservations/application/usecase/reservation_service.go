package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mesaYaDash/internal/modules/reservations/application/port"
	"mesaYaDash/internal/modules/reservations/domain"
	"mesaYaDash/internal/platform/querycache"
	"mesaYaDash/internal/shared/forms"
	"mesaYaDash/internal/shared/normalization"
)

// Invalidates lists the groups made stale by any reservation mutation. A
// reservation can hold or release a table, so the floor is refetched too.
var Invalidates = []string{normalization.EntityReservations, normalization.EntityTables, normalization.EntityActivity}

type Service struct {
	gateway port.ReservationGateway
	cache   *querycache.Cache
}

func NewService(gateway port.ReservationGateway, cache *querycache.Cache) *Service {
	return &Service{gateway: gateway, cache: cache}
}

// List returns one page of reservations, cached per filter combination.
func (s *Service) List(ctx context.Context, cmd domain.ListReservationsCommand) (domain.Page, error) {
	if err := forms.Check(cmd); err != nil {
		return domain.Page{}, err
	}
	query := cmd.Query()
	key := querycache.NewKey(normalization.EntityReservations, query.CanonicalKey())
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) (domain.Page, error) {
		return s.gateway.List(ctx, query)
	})
}

func (s *Service) Get(ctx context.Context, id string) (domain.Reservation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Reservation{}, domain.ErrMissingID
	}
	key := querycache.NewKey(normalization.EntityReservations, "id="+id)
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) (domain.Reservation, error) {
		return s.gateway.Get(ctx, id)
	})
}

func (s *Service) Create(ctx context.Context, form domain.ReservationForm) (domain.Reservation, error) {
	if err := forms.Check(form); err != nil {
		return domain.Reservation{}, err
	}
	created, err := querycache.Mutate(ctx, s.cache, normalization.EntityReservations, func(ctx context.Context) (domain.Reservation, error) {
		return s.gateway.Create(ctx, form)
	}, Invalidates...)
	if err != nil {
		return domain.Reservation{}, err
	}
	slog.Info("reservation created", slog.String("reservationId", created.ID), slog.String("date", form.Date), slog.Int("partySize", form.PartySize))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, form domain.ReservationForm) (domain.Reservation, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Reservation{}, domain.ErrMissingID
	}
	if err := forms.Check(form); err != nil {
		return domain.Reservation{}, err
	}
	return querycache.Mutate(ctx, s.cache, normalization.EntityReservations, func(ctx context.Context) (domain.Reservation, error) {
		return s.gateway.Update(ctx, id, form)
	}, Invalidates...)
}

// ChangeStatus updates every cached page holding the reservation before the
// request and restores them exactly if the backend refuses.
func (s *Service) ChangeStatus(ctx context.Context, cmd domain.UpdateStatusCommand) error {
	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		return domain.ErrMissingID
	}
	status := domain.NormalizeStatus(cmd.Status)
	if !status.Known() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, cmd.Status)
	}

	update := querycache.Update[domain.Page]{
		Group: normalization.EntityReservations,
		Apply: func(current domain.Page) (domain.Page, bool) { return current.WithStatus(id, status) },
	}
	_, err := querycache.Optimistic(ctx, s.cache, update, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.gateway.UpdateStatus(ctx, id, status)
	}, Invalidates...)
	if err != nil {
		slog.Warn("reservation status change failed", slog.String("reservationId", id), slog.String("status", string(status)), slog.Any("error", err))
		return err
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrMissingID
	}
	_, err := querycache.Mutate(ctx, s.cache, normalization.EntityReservations, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.gateway.Delete(ctx, id)
	}, Invalidates...)
	return err
}
