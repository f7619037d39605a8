package infrastructure

import (
	"mesaYaDash/internal/modules/messaging/domain"
	"mesaYaDash/internal/platform/export"
	"mesaYaDash/internal/shared/normalization"
)

var MessageColumns = []export.Column[domain.MessageLog]{
	{Header: "id", Value: func(m domain.MessageLog) string { return m.ID }},
	{Header: "at", Value: func(m domain.MessageLog) string { return normalization.FormatTimestamp(m.At) }},
	{Header: "to", Value: func(m domain.MessageLog) string { return m.To }},
	{Header: "template", Value: func(m domain.MessageLog) string { return m.Template }},
	{Header: "status", Value: func(m domain.MessageLog) string { return string(m.Status) }},
	{Header: "error", Value: func(m domain.MessageLog) string { return m.Error }},
}
