package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"mesaYaDash/internal/config"
	customers "mesaYaDash/internal/modules/customers/application/usecase"
	customersinfra "mesaYaDash/internal/modules/customers/infrastructure"
	messaging "mesaYaDash/internal/modules/messaging/application/usecase"
	messaginginfra "mesaYaDash/internal/modules/messaging/infrastructure"
	reservations "mesaYaDash/internal/modules/reservations/application/usecase"
	reservationsinfra "mesaYaDash/internal/modules/reservations/infrastructure"
	settings "mesaYaDash/internal/modules/settings/application/usecase"
	settingsinfra "mesaYaDash/internal/modules/settings/infrastructure"
	system "mesaYaDash/internal/modules/system/application/usecase"
	systeminfra "mesaYaDash/internal/modules/system/infrastructure"
	tables "mesaYaDash/internal/modules/tables/application/usecase"
	tablesinfra "mesaYaDash/internal/modules/tables/infrastructure"
	waitlist "mesaYaDash/internal/modules/waitlist/application/usecase"
	waitlistinfra "mesaYaDash/internal/modules/waitlist/infrastructure"
	"mesaYaDash/internal/platform/querycache"
	"mesaYaDash/internal/platform/rest"
)

// Services holds one use case per screen over a single shared query cache.
type Services struct {
	Cache        *querycache.Cache
	Tables       *tables.Service
	Reservations *reservations.Service
	Customers    *customers.Service
	Waitlist     *waitlist.Service
	Settings     *settings.Service
	System       *system.Service
	Messaging    *messaging.Service
}

// NewServices wires the gateways and use cases described by cfg. reg receives
// the cache metrics; nil means the default registerer.
func NewServices(cfg *config.Config, reg prometheus.Registerer) (*Services, error) {
	client := rest.NewClient(cfg.REST.BaseURL, cfg.REST.Timeout, rest.WithToken(cfg.REST.Token))
	cache := querycache.New(
		querycache.WithStaleTime(cfg.Cache.StaleTime),
		querycache.WithMetrics(querycache.NewMetrics(reg, cfg.Metrics.Namespace)),
	)

	customerGateway, err := customersinfra.NewGateway(cfg.Sources.CRM, client)
	if err != nil {
		return nil, fmt.Errorf("CRM_SOURCE: %w", err)
	}
	messageGateway, err := messaginginfra.NewGateway(cfg.Sources.Messaging, client)
	if err != nil {
		return nil, fmt.Errorf("MESSAGING_SOURCE: %w", err)
	}
	systemGateway := systeminfra.NewHTTPGateway(client)

	return &Services{
		Cache:        cache,
		Tables:       tables.NewService(tablesinfra.NewHTTPGateway(client), cache),
		Reservations: reservations.NewService(reservationsinfra.NewHTTPGateway(client), cache),
		Customers:    customers.NewService(customerGateway, cache),
		Waitlist:     waitlist.NewService(waitlistinfra.NewHTTPGateway(client), cache),
		Settings:     settings.NewService(settingsinfra.NewHTTPGateway(client), cache),
		System:       system.NewService(systemGateway, systemGateway, cache),
		Messaging:    messaging.NewService(messageGateway, cache),
	}, nil
}
