package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"mesaYaDash/internal/modules/tables/domain"
	"mesaYaDash/internal/platform/rest"
)

const (
	mobileTablesPath = "/api/mobile/tables"
	tablesPath       = "/api/tables"
)

var listKeys = []string{"mesas", "tables"}

// HTTPGateway talks to the tables endpoints of the backend.
type HTTPGateway struct {
	client *rest.Client
}

func NewHTTPGateway(client *rest.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) List(ctx context.Context) ([]domain.Table, error) {
	rows, _, err := rest.GetList[TableDTO](ctx, g.client, mobileTablesPath, nil, listKeys...)
	if err != nil {
		return nil, err
	}
	tables := make([]domain.Table, 0, len(rows))
	for _, row := range rows {
		tables = append(tables, FromBackend(row))
	}
	slog.Debug("tables fetched", slog.Int("count", len(tables)))
	return tables, nil
}

func (g *HTTPGateway) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	path := fmt.Sprintf("%s/%s/status", mobileTablesPath, url.PathEscape(id))
	err := g.client.Send(ctx, http.MethodPatch, path, map[string]string{"estado": string(status)}, nil)
	return mapError(err)
}

func (g *HTTPGateway) Create(ctx context.Context, form domain.TableForm) (domain.Table, error) {
	row, err := rest.SendItem[TableDTO](ctx, g.client, http.MethodPost, tablesPath, FormToBackend(form), "mesa", "table")
	if err != nil {
		return domain.Table{}, mapError(err)
	}
	return FromBackend(row), nil
}

func (g *HTTPGateway) Update(ctx context.Context, id string, form domain.TableForm) (domain.Table, error) {
	path := tablesPath + "/" + url.PathEscape(id)
	row, err := rest.SendItem[TableDTO](ctx, g.client, http.MethodPut, path, FormToBackend(form), "mesa", "table")
	if err != nil {
		return domain.Table{}, mapError(err)
	}
	table := FromBackend(row)
	if strings.TrimSpace(table.ID) == "" {
		table = form.Table(id)
		table.Status = domain.StatusUnknown
	}
	return table, nil
}

func (g *HTTPGateway) Delete(ctx context.Context, id string) error {
	return mapError(g.client.Send(ctx, http.MethodDelete, tablesPath+"/"+url.PathEscape(id), nil, nil))
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if rest.IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrTableNotFound, err)
	}
	return err
}
