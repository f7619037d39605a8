package infrastructure

import (
	"mesaYaDash/internal/modules/system/domain"
	"mesaYaDash/internal/platform/export"
	"mesaYaDash/internal/shared/normalization"
)

var ActivityColumns = []export.Column[domain.ActivityEntry]{
	{Header: "id", Value: func(e domain.ActivityEntry) string { return e.ID }},
	{Header: "at", Value: func(e domain.ActivityEntry) string { return normalization.FormatTimestamp(e.At) }},
	{Header: "actor", Value: func(e domain.ActivityEntry) string { return e.Actor }},
	{Header: "entity", Value: func(e domain.ActivityEntry) string { return e.Entity }},
	{Header: "action", Value: func(e domain.ActivityEntry) string { return e.Action }},
	{Header: "entity_id", Value: func(e domain.ActivityEntry) string { return e.EntityID }},
	{Header: "detail", Value: func(e domain.ActivityEntry) string { return e.Detail }},
}
