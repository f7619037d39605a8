package broker

import (
	"context"
	"log/slog"
	"sync"

	"mesaYaDash/internal/modules/realtime/domain"
	"mesaYaDash/internal/modules/realtime/infrastructure"
)

// StartKafkaConsumers runs one consumer per registered topic and returns a
// WaitGroup done once all of them stop with ctx.
func StartKafkaConsumers(
	ctx context.Context,
	registry *infrastructure.HandlerRegistry,
	brokers []string,
	groupID string,
) *sync.WaitGroup {
	var wg sync.WaitGroup
	if len(brokers) == 0 {
		// kafka.NewReader panics on an empty broker list.
		slog.Info("kafka disabled: no brokers configured")
		return &wg
	}
	for _, topic := range registry.Topics() {
		wg.Add(1)
		go func(tp string) {
			defer wg.Done()
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			err := consumer.Consume(ctx, func(msg *domain.Message) error {
				return registry.Dispatch(ctx, tp, msg)
			})
			slog.Info("kafka consumer stopped", slog.String("topic", tp), slog.Any("reason", err))
		}(topic)
	}
	return &wg
}
