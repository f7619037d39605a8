package infrastructure

import (
	"context"
	"fmt"
	"strings"

	"mesaYaDash/internal/modules/messaging/application/port"
	"mesaYaDash/internal/modules/messaging/domain"
	"mesaYaDash/internal/platform/rest"
	"mesaYaDash/internal/shared/paging"
)

const (
	SourceWhatsApp = "whatsapp"
	SourceMessages = "messages"
)

type variant[D any] struct {
	source   string
	path     string
	listKeys []string
	aliases  map[string]string
	from     func(D) domain.MessageLog
}

type Gateway[D any] struct {
	client *rest.Client
	v      variant[D]
}

func NewWhatsAppGateway(client *rest.Client) *Gateway[WhatsAppLogDTO] {
	return &Gateway[WhatsAppLogDTO]{client: client, v: variant[WhatsAppLogDTO]{
		source:   SourceWhatsApp,
		path:     "/api/whatsapp/logs",
		listKeys: []string{"logs", "mensajes"},
		aliases:  map[string]string{"status": "estado"},
		from:     WhatsAppFromBackend,
	}}
}

func NewMessagesGateway(client *rest.Client) *Gateway[MessageLogDTO] {
	return &Gateway[MessageLogDTO]{client: client, v: variant[MessageLogDTO]{
		source:   SourceMessages,
		path:     "/api/messages/logs",
		listKeys: []string{"logs", "messages"},
		from:     MessageFromBackend,
	}}
}

// NewGateway picks the flavour named by source; blank means whatsapp.
func NewGateway(source string, client *rest.Client) (port.MessageGateway, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "", SourceWhatsApp:
		return NewWhatsAppGateway(client), nil
	case SourceMessages:
		return NewMessagesGateway(client), nil
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
	page := domain.Page{Items: make([]domain.MessageLog, 0, len(rows)), Total: total}
	for _, row := range rows {
		page.Items = append(page.Items, g.v.from(row))
	}
	return page, nil
}
