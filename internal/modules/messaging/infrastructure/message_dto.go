package infrastructure

import (
	"mesaYaDash/internal/modules/messaging/domain"
	"mesaYaDash/internal/platform/rest"
	"mesaYaDash/internal/shared/normalization"
)

// WhatsAppLogDTO is a row of /api/whatsapp/logs.
type WhatsAppLogDTO struct {
	ID        rest.ID `json:"id"`
	Fecha     string  `json:"fecha"`
	Telefono  string  `json:"telefono"`
	Plantilla string  `json:"plantilla"`
	Estado    string  `json:"estado"`
	Error     string  `json:"error,omitempty"`
}

// MessageLogDTO is a row of /api/messages/logs.
type MessageLogDTO struct {
	ID        rest.ID `json:"id"`
	SentAt    string  `json:"sent_at"`
	Recipient string  `json:"recipient"`
	Template  string  `json:"template"`
	Status    string  `json:"status"`
	Error     string  `json:"error,omitempty"`
}

func WhatsAppFromBackend(dto WhatsAppLogDTO) domain.MessageLog {
	at, _ := normalization.ParseTimestamp(dto.Fecha, nil)
	return domain.MessageLog{
		ID:       dto.ID.String(),
		At:       at,
		To:       dto.Telefono,
		Template: dto.Plantilla,
		Status:   domain.NormalizeStatus(dto.Estado),
		Error:    dto.Error,
	}
}

func WhatsAppToBackend(m domain.MessageLog) WhatsAppLogDTO {
	return WhatsAppLogDTO{
		ID:        rest.ID(m.ID),
		Fecha:     normalization.FormatTimestamp(m.At),
		Telefono:  m.To,
		Plantilla: m.Template,
		Estado:    string(m.Status),
		Error:     m.Error,
	}
}

func MessageFromBackend(dto MessageLogDTO) domain.MessageLog {
	at, _ := normalization.ParseTimestamp(dto.SentAt, nil)
	return domain.MessageLog{
		ID:       dto.ID.String(),
		At:       at,
		To:       dto.Recipient,
		Template: dto.Template,
		Status:   domain.NormalizeStatus(dto.Status),
		Error:    dto.Error,
	}
}

func MessageToBackend(m domain.MessageLog) MessageLogDTO {
	return MessageLogDTO{
		ID:        rest.ID(m.ID),
		SentAt:    normalization.FormatTimestamp(m.At),
		Recipient: m.To,
		Template:  m.Template,
		Status:    string(m.Status),
		Error:     m.Error,
	}
}
