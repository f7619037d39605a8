package infrastructure

import (
	"testing"
	"time"

	"mesaYaDash/internal/modules/messaging/domain"
)

func TestVariantsConvergeOnOneShape(t *testing.T) {
	at := time.Date(2024, 5, 10, 19, 0, 0, 0, time.UTC)
	fromWhatsApp := WhatsAppFromBackend(WhatsAppLogDTO{ID: "1", Fecha: "2024-05-10T19:00:00Z", Telefono: "612345678", Plantilla: "recordatorio", Estado: "Leido"})
	fromMessages := MessageFromBackend(MessageLogDTO{ID: "1", SentAt: "2024-05-10 19:00:00", Recipient: "612345678", Template: "recordatorio", Status: "read"})

	want := domain.MessageLog{ID: "1", At: at, To: "612345678", Template: "recordatorio", Status: domain.StatusRead}
	for name, got := range map[string]domain.MessageLog{"whatsapp": fromWhatsApp, "messages": fromMessages} {
		if !got.At.Equal(want.At) || got.To != want.To || got.Status != want.Status || got.Template != want.Template {
			t.Fatalf("%s: expected %+v, got %+v", name, want, got)
		}
	}

	if dto := WhatsAppToBackend(fromWhatsApp); dto.Estado != "leido" || dto.Telefono != "612345678" {
		t.Fatalf("unexpected whatsapp dto: %+v", dto)
	}
	if dto := MessageToBackend(fromMessages); dto.Status != "leido" || dto.SentAt != "2024-05-10T19:00:00Z" {
		t.Fatalf("unexpected messages dto: %+v", dto)
	}
}

func TestNewGatewayRejectsUnknownSource(t *testing.T) {
	if _, err := NewGateway("sms", nil); err == nil {
		t.Fatal("expected error for unknown source")
	}
	gw, err := NewGateway("", nil)
	if err != nil || gw.Source() != SourceWhatsApp {
		t.Fatalf("expected whatsapp default, got %v %v", gw, err)
	}
}
