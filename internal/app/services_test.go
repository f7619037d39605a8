package app

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesaYaDash/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		REST:    config.RESTConfig{BaseURL: "http://backend", Timeout: time.Second},
		Cache:   config.CacheConfig{StaleTime: time.Minute},
		Sources: config.SourcesConfig{CRM: "crm", Messaging: "messages"},
		Metrics: config.MetricsConfig{Namespace: "test"},
	}
}

func TestNewServicesHonoursSources(t *testing.T) {
	services, err := NewServices(testConfig(), prometheus.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, "crm", services.Customers.Source())
	assert.Equal(t, "messages", services.Messaging.Source())
	assert.NotNil(t, services.Cache)
}

func TestNewServicesRejectsUnknownSource(t *testing.T) {
	cfg := testConfig()
	cfg.Sources.Messaging = "sms"
	_, err := NewServices(cfg, prometheus.NewRegistry())
	assert.ErrorContains(t, err, "MESSAGING_SOURCE")
}
