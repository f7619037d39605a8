package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"mesaYaDash/internal/modules/customers/application/port"
	"mesaYaDash/internal/modules/customers/domain"
	"mesaYaDash/internal/platform/rest"
	"mesaYaDash/internal/shared/paging"
)

const (
	SourceClients = "clients"
	SourceCRM     = "crm"
)

// variant describes one backend flavour of the customers API.
type variant[D any] struct {
	source   string
	path     string
	listKeys []string
	itemKeys []string
	aliases  map[string]string
	from     func(D) domain.Customer
	body     func(domain.CustomerForm) any
}

// Gateway talks to one of the two customer endpoints.
type Gateway[D any] struct {
	client *rest.Client
	v      variant[D]
}

// NewClientsGateway targets /api/clients with Spanish field names.
func NewClientsGateway(client *rest.Client) *Gateway[ClientDTO] {
	return &Gateway[ClientDTO]{client: client, v: variant[ClientDTO]{
		source:   SourceClients,
		path:     "/api/clients",
		listKeys: []string{"clientes", "clients"},
		itemKeys: []string{"cliente", "client"},
		aliases:  map[string]string{"tier": "nivel"},
		from:     ClientFromBackend,
		body:     func(f domain.CustomerForm) any { return ClientFormToBackend(f) },
	}}
}

// NewCRMGateway targets /api/crm/customers.
func NewCRMGateway(client *rest.Client) *Gateway[CRMCustomerDTO] {
	return &Gateway[CRMCustomerDTO]{client: client, v: variant[CRMCustomerDTO]{
		source:   SourceCRM,
		path:     "/api/crm/customers",
		listKeys: []string{"customers"},
		itemKeys: []string{"customer"},
		aliases:  map[string]string{"tier": "tier"},
		from:     CRMFromBackend,
		body:     func(f domain.CustomerForm) any { return CRMFormToBackend(f) },
	}}
}

// NewGateway picks the flavour named by source.
func NewGateway(source string, client *rest.Client) (port.CustomerGateway, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "", SourceClients:
		return NewClientsGateway(client), nil
	case SourceCRM:
		return NewCRMGateway(client), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSource, source)
	}
}

func (g *Gateway[D]) Source() string { return g.v.source }

func (g *Gateway[D]) List(ctx context.Context, query paging.PagedQuery) (domain.Page, error) {
	rows, total, err := rest.GetList[D](ctx, g.client, g.v.path, query.ToURLValues(g.v.aliases), g.v.listKeys...)
	if err != nil {
		return domain.Page{}, err
	}
	page := domain.Page{Items: make([]domain.Customer, 0, len(rows)), Total: total}
	for _, row := range rows {
		page.Items = append(page.Items, g.v.from(row))
	}
	return page, nil
}

func (g *Gateway[D]) Create(ctx context.Context, form domain.CustomerForm) (domain.Customer, error) {
	row, err := rest.SendItem[D](ctx, g.client, http.MethodPost, g.v.path, g.v.body(form), g.v.itemKeys...)
	if err != nil {
		return domain.Customer{}, g.mapError(err)
	}
	return g.v.from(row), nil
}

func (g *Gateway[D]) Update(ctx context.Context, id string, form domain.CustomerForm) (domain.Customer, error) {
	row, err := rest.SendItem[D](ctx, g.client, http.MethodPut, g.itemPath(id), g.v.body(form), g.v.itemKeys...)
	if err != nil {
		return domain.Customer{}, g.mapError(err)
	}
	return g.v.from(row), nil
}

func (g *Gateway[D]) Delete(ctx context.Context, id string) error {
	return g.mapError(g.client.Send(ctx, http.MethodDelete, g.itemPath(id), nil, nil))
}

func (g *Gateway[D]) itemPath(id string) string {
	return g.v.path + "/" + url.PathEscape(id)
}

func (g *Gateway[D]) mapError(err error) error {
	if err != nil && rest.IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrCustomerNotFound, err)
	}
	return err
}
