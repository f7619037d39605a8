package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesaYaDash/internal/modules/messaging/domain"
	"mesaYaDash/internal/modules/messaging/infrastructure"
	"mesaYaDash/internal/platform/querycache"
	"mesaYaDash/internal/platform/rest"
)

func TestListPerSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		path   string
		param  string
		body   string
	}{
		{
			name:   "whatsapp",
			source: infrastructure.SourceWhatsApp,
			path:   "/api/whatsapp/logs",
			param:  "estado",
			body:   `[{"id":1,"fecha":"2024-05-10T19:00:00Z","telefono":"612345678","plantilla":"recordatorio","estado":"fallido","error":"numero invalido"}]`,
		},
		{
			name:   "messages",
			source: infrastructure.SourceMessages,
			path:   "/api/messages/logs",
			param:  "status",
			body:   `{"logs":[{"id":"1","sent_at":"2024-05-10T19:00:00Z","recipient":"612345678","template":"recordatorio","status":"failed","error":"numero invalido"}],"total":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.path, r.URL.Path)
				assert.Equal(t, "fallido", r.URL.Query().Get(tt.param))
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			gateway, err := infrastructure.NewGateway(tt.source, rest.NewClient(server.URL, time.Second))
			require.NoError(t, err)
			cache := querycache.New()
			service := NewService(gateway, cache)

			page, err := service.List(context.Background(), domain.ListMessagesCommand{Status: "failed"})
			require.NoError(t, err)
			require.Len(t, page.Items, 1)
			assert.Equal(t, domain.StatusFailed, page.Items[0].Status)
			assert.Equal(t, "numero invalido", page.Items[0].Error)
			assert.Equal(t, 1.0, page.FailureRate())
			assert.Len(t, cache.Keys("messages"), 1)
		})
	}
}
