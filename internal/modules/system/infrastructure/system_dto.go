package infrastructure

import (
	"bytes"
	"encoding/json"

	"mesaYaDash/internal/modules/system/domain"
	"mesaYaDash/internal/platform/rest"
	"mesaYaDash/internal/shared/normalization"
)

type ActivityDTO struct {
	ID       rest.ID         `json:"id"`
	At       string          `json:"at"`
	Actor    string          `json:"actor"`
	Entity   string          `json:"entity"`
	Action   string          `json:"action"`
	EntityID rest.ID         `json:"entity_id"`
	Detail   json.RawMessage `json:"detail,omitempty"`
}

type ServiceDTO struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMS int    `json:"latency_ms"`
	Detail    string `json:"detail,omitempty"`
}

type HealthDTO struct {
	Status        string       `json:"status"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	Services      []ServiceDTO `json:"services"`
}

func ActivityFromBackend(dto ActivityDTO) domain.ActivityEntry {
	at, _ := normalization.ParseTimestamp(dto.At, nil)
	return domain.ActivityEntry{
		ID:       dto.ID.String(),
		At:       at,
		Actor:    dto.Actor,
		Entity:   normalization.NormalizeEntity(dto.Entity),
		Action:   dto.Action,
		EntityID: dto.EntityID.String(),
		Detail:   detailText(dto.Detail),
	}
}

func ActivityToBackend(entry domain.ActivityEntry) ActivityDTO {
	detail, _ := json.Marshal(entry.Detail)
	return ActivityDTO{
		ID:       rest.ID(entry.ID),
		At:       normalization.FormatTimestamp(entry.At),
		Actor:    entry.Actor,
		Entity:   entry.Entity,
		Action:   entry.Action,
		EntityID: rest.ID(entry.EntityID),
		Detail:   detail,
	}
}

// detailText keeps string details as-is and flattens objects to compact JSON.
func detailText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		return text
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

func HealthFromBackend(dto HealthDTO) domain.SystemHealth {
	services := make([]domain.ServiceHealth, 0, len(dto.Services))
	for _, svc := range dto.Services {
		services = append(services, domain.ServiceHealth{
			Name:      svc.Name,
			Status:    domain.NormalizeHealth(svc.Status),
			LatencyMS: svc.LatencyMS,
			Detail:    svc.Detail,
		})
	}
	return domain.SystemHealth{
		Status:        domain.NormalizeHealth(dto.Status),
		UptimeSeconds: dto.UptimeSeconds,
		Services:      services,
	}
}

func HealthToBackend(h domain.SystemHealth) HealthDTO {
	services := make([]ServiceDTO, 0, len(h.Services))
	for _, svc := range h.Services {
		services = append(services, ServiceDTO{Name: svc.Name, Status: string(svc.Status), LatencyMS: svc.LatencyMS, Detail: svc.Detail})
	}
	return HealthDTO{Status: string(h.Status), UptimeSeconds: h.UptimeSeconds, Services: services}
}
