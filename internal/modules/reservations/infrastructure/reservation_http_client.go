package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"mesaYaDash/internal/modules/reservations/domain"
	"mesaYaDash/internal/platform/rest"
	"mesaYaDash/internal/shared/paging"
)

const reservationsPath = "/api/reservations"

var (
	listKeys = []string{"reservations", "reservas"}
	itemKeys = []string{"reservation", "reserva"}
	// filterAliases maps dashboard filters onto backend query parameters.
	filterAliases = map[string]string{"date": "date", "status": "status"}
)

type HTTPGateway struct {
	client *rest.Client
}

func NewHTTPGateway(client *rest.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) List(ctx context.Context, query paging.PagedQuery) (domain.Page, error) {
	rows, total, err := rest.GetList[ReservationDTO](ctx, g.client, reservationsPath, query.ToURLValues(filterAliases), listKeys...)
	if err != nil {
		return domain.Page{}, err
	}
	page := domain.Page{Items: make([]domain.Reservation, 0, len(rows)), Total: total}
	for _, row := range rows {
		page.Items = append(page.Items, FromBackend(row))
	}
	return page, nil
}

func (g *HTTPGateway) Get(ctx context.Context, id string) (domain.Reservation, error) {
	row, err := rest.GetItem[ReservationDTO](ctx, g.client, itemPath(id), itemKeys...)
	if err != nil {
		return domain.Reservation{}, mapError(err)
	}
	return FromBackend(row), nil
}

func (g *HTTPGateway) Create(ctx context.Context, form domain.ReservationForm) (domain.Reservation, error) {
	body := ToBackend(form.Reservation(""))
	row, err := rest.SendItem[ReservationDTO](ctx, g.client, http.MethodPost, reservationsPath, body, itemKeys...)
	if err != nil {
		return domain.Reservation{}, mapError(err)
	}
	return FromBackend(row), nil
}

func (g *HTTPGateway) Update(ctx context.Context, id string, form domain.ReservationForm) (domain.Reservation, error) {
	body := ToBackend(form.Reservation(id))
	body.Status = ""
	row, err := rest.SendItem[ReservationDTO](ctx, g.client, http.MethodPut, itemPath(id), body, itemKeys...)
	if err != nil {
		return domain.Reservation{}, mapError(err)
	}
	return FromBackend(row), nil
}

func (g *HTTPGateway) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	err := g.client.Send(ctx, http.MethodPatch, itemPath(id)+"/status", map[string]string{"status": string(status)}, nil)
	return mapError(err)
}

func (g *HTTPGateway) Delete(ctx context.Context, id string) error {
	return mapError(g.client.Send(ctx, http.MethodDelete, itemPath(id), nil, nil))
}

func itemPath(id string) string {
	return reservationsPath + "/" + url.PathEscape(id)
}

func mapError(err error) error {
	if err != nil && rest.IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrReservationNotFound, err)
	}
	return err
}
