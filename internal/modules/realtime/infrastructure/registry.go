package infrastructure

import (
	"context"
	"log/slog"

	"mesaYaDash/internal/modules/realtime/application/port"
	"mesaYaDash/internal/modules/realtime/domain"
)

// HandlerRegistry dispatches Kafka messages by the topic they were read from.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[h.Topic()] = h
}

func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

func (r *HandlerRegistry) Dispatch(ctx context.Context, source string, msg *domain.Message) error {
	if handler, ok := r.handlers[source]; ok {
		return handler.Handle(ctx, msg)
	}
	slog.Debug("no handler for topic", slog.String("topic", source))
	return nil
}
