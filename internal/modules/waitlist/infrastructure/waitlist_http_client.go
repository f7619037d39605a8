package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"mesaYaDash/internal/modules/waitlist/domain"
	"mesaYaDash/internal/platform/rest"
)

const waitlistPath = "/api/waitlist"

type HTTPGateway struct {
	client *rest.Client
}

func NewHTTPGateway(client *rest.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) List(ctx context.Context) ([]domain.Entry, error) {
	rows, _, err := rest.GetList[EntryDTO](ctx, g.client, waitlistPath, nil, "waitlist", "entries", "lista")
	if err != nil {
		return nil, err
	}
	entries := make([]domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, FromBackend(row))
	}
	return entries, nil
}

func (g *HTTPGateway) Add(ctx context.Context, form domain.EntryForm) (domain.Entry, error) {
	body := ToBackend(domain.Entry{
		CustomerName:  form.CustomerName,
		Phone:         form.Phone,
		PartySize:     form.PartySize,
		QuotedMinutes: form.QuotedMinutes,
	})
	row, err := rest.SendItem[EntryDTO](ctx, g.client, http.MethodPost, waitlistPath, body, "entry")
	if err != nil {
		return domain.Entry{}, err
	}
	return FromBackend(row), nil
}

func (g *HTTPGateway) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	path := waitlistPath + "/" + url.PathEscape(id) + "/status"
	return mapError(g.client.Send(ctx, http.MethodPatch, path, map[string]string{"status": string(status)}, nil))
}

func (g *HTTPGateway) Remove(ctx context.Context, id string) error {
	return mapError(g.client.Send(ctx, http.MethodDelete, waitlistPath+"/"+url.PathEscape(id), nil, nil))
}

func mapError(err error) error {
	if err != nil && rest.IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrEntryNotFound, err)
	}
	return err
}
