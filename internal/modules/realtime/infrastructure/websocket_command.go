package infrastructure

import (
	"log/slog"
	"strings"
	"time"

	"mesaYaDash/internal/modules/realtime/domain"
	"mesaYaDash/internal/shared/normalization"
)

// Command is a client request: {"action":"subscribe","groups":["tables"]}.
// Topic is accepted for single exact-topic subscriptions.
type Command struct {
	Action string   `json:"action"`
	Topic  string   `json:"topic,omitempty"`
	Groups []string `json:"groups,omitempty"`
}

// Targets returns the normalised groups plus the raw topic, if any.
func (c Command) Targets() []string {
	targets := make([]string, 0, len(c.Groups)+1)
	for _, g := range c.Groups {
		if group := normalization.NormalizeEntity(g); group != "" {
			targets = append(targets, group)
		}
	}
	if topic := strings.TrimSpace(c.Topic); topic != "" {
		targets = append(targets, topic)
	}
	return targets
}

type CommandHandler func(client *Client, cmd Command)

type CommandProcessor struct {
	hub      *Hub
	handlers map[string]CommandHandler
}

func NewCommandProcessor(hub *Hub) *CommandProcessor {
	processor := &CommandProcessor{
		hub:      hub,
		handlers: make(map[string]CommandHandler),
	}
	processor.Register("subscribe", processor.handleSubscribe)
	processor.Register("unsubscribe", processor.handleUnsubscribe)
	processor.Register("ping", processor.handlePing)
	return processor
}

func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	key := normalizeAction(action)
	if handler == nil || key == "" {
		return
	}
	p.handlers[key] = handler
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}
	action := normalizeAction(cmd.Action)
	handler, ok := p.handlers[action]
	if !ok {
		slog.Debug("ws command ignored", slog.String("sessionId", client.sessionID), slog.String("action", action))
		client.SendDomainMessage(&domain.Message{
			Topic:     domain.TopicSystemError,
			Entity:    domain.SystemEntity,
			Action:    domain.ActionError,
			Data:      map[string]string{"error": "unknown action " + cmd.Action},
			Timestamp: time.Now().UTC(),
		})
		return
	}
	handler(client, cmd)
}

func (p *CommandProcessor) handleSubscribe(client *Client, cmd Command) {
	targets := cmd.Targets()
	if len(targets) == 0 {
		slog.Debug("ws subscribe ignored empty groups", slog.String("sessionId", client.sessionID))
		return
	}
	p.hub.mu.Lock()
	defer p.hub.mu.Unlock()
	if client.detached() {
		slog.Debug("ws subscribe ignored detached client", slog.String("sessionId", client.sessionID))
		return
	}
	delete(p.hub.global, client)
	for _, target := range targets {
		p.hub.subscribeLocked(client, target)
	}
	slog.Debug("ws subscribe", slog.String("sessionId", client.sessionID), slog.Any("groups", targets))
}

func (p *CommandProcessor) handleUnsubscribe(client *Client, cmd Command) {
	for _, target := range cmd.Targets() {
		p.hub.unsubscribe(client, target)
	}
}

func (p *CommandProcessor) handlePing(client *Client, _ Command) {
	client.SendDomainMessage(&domain.Message{
		Topic:     domain.TopicSystemPong,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionPong,
		Timestamp: time.Now().UTC(),
	})
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
