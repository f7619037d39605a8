package handler

import (
	"context"
	"log/slog"
	"strings"

	"mesaYaDash/internal/modules/realtime/application/port"
	"mesaYaDash/internal/modules/realtime/domain"
	"mesaYaDash/internal/shared/normalization"
)

// EntityStreamHandler invalida la caché cuando el backend publica un cambio de
// una entidad. Los clientes WebSocket se enteran por los eventos de la caché.
type EntityStreamHandler struct {
	entity         string
	kafkaTopic     string
	allowedActions map[string]struct{}
	cache          port.Invalidator
}

// NewEntityStreamHandler binds kafkaTopic to the entity it was configured for.
// Events that do not name a known entity are attributed to that entity.
func NewEntityStreamHandler(entity, kafkaTopic string, allowedActions []string, cache port.Invalidator) *EntityStreamHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &EntityStreamHandler{
		entity:         normalization.NormalizeEntity(entity),
		kafkaTopic:     kafkaTopic,
		allowedActions: actionSet,
		cache:          cache,
	}
}

func (h *EntityStreamHandler) Topic() string { return h.kafkaTopic }

func (h *EntityStreamHandler) Handle(_ context.Context, msg *domain.Message) error {
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[strings.ToLower(msg.Action)]; !ok {
			return nil
		}
	}
	entity := h.resolveEntity(msg)
	groups := domain.AffectedGroups(entity)
	if len(groups) == 0 {
		slog.Warn("entity-stream ignored unknown entity", slog.String("topic", h.kafkaTopic), slog.String("entity", msg.Entity))
		return nil
	}
	h.cache.Invalidate(groups...)
	slog.Info("entity-stream invalidated", slog.String("entity", entity), slog.String("action", msg.Action), slog.String("resourceId", msg.ResourceID), slog.Any("groups", groups))
	return nil
}

// resolveEntity prefers the entity named by the event, then the configured
// one, then the last segment of the topic name.
func (h *EntityStreamHandler) resolveEntity(msg *domain.Message) string {
	suffix := h.kafkaTopic[strings.LastIndexAny(h.kafkaTopic, ".-_")+1:]
	for _, candidate := range []string{msg.Entity, h.entity, suffix} {
		if entity := normalization.NormalizeEntity(candidate); normalization.IsValidEntity(entity) {
			return entity
		}
	}
	return ""
}

var _ port.TopicHandler = (*EntityStreamHandler)(nil)
