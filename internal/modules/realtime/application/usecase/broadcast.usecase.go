package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"mesaYaDash/internal/modules/realtime/application/port"
	"mesaYaDash/internal/modules/realtime/domain"
	"mesaYaDash/internal/platform/querycache"
)

// CacheBridge forwards query cache events to websocket clients as
// "<group>.<kind>" messages.
type CacheBridge struct {
	cache       *querycache.Cache
	broadcaster port.Broadcaster
}

func NewCacheBridge(cache *querycache.Cache, broadcaster port.Broadcaster) *CacheBridge {
	return &CacheBridge{cache: cache, broadcaster: broadcaster}
}

// Start subscribes to the cache until ctx is done.
func (b *CacheBridge) Start(ctx context.Context) {
	unsubscribe := b.cache.Subscribe(func(ev querycache.Event) {
		b.broadcaster.Broadcast(ctx, b.Message(ev))
	})
	go func() {
		<-ctx.Done()
		unsubscribe()
		slog.Debug("cache bridge stopped")
	}()
}

// Message builds the websocket message for ev. Updated and restored events
// carry the current value so dashboards can render without a round trip.
func (b *CacheBridge) Message(ev querycache.Event) *domain.Message {
	msg := &domain.Message{
		Topic:      domain.CustomTopic(ev.Key.Group, string(ev.Kind)),
		Entity:     ev.Key.Group,
		Action:     string(ev.Kind),
		ResourceID: ev.Key.Scope,
		Metadata: map[string]string{
			"scope":   ev.Key.Scope,
			"version": strconv.FormatUint(ev.Version, 10),
		},
		Timestamp: ev.At.UTC(),
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	if ev.Kind == querycache.EventUpdated || ev.Kind == querycache.EventRestored {
		if entry, ok := b.cache.Peek(ev.Key); ok {
			msg.Data = entry.Value
		}
	}
	return msg
}
