package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"elyseeWeb/internal/modules/realtime/domain"
)

type Command struct {
	Action  string          `json:"action"`
	Topic   string          `json:"topic,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (c Command) actionKey() string {
	return normalizeAction(c.Action)
}

type CommandHandler func(ctx context.Context, client *Client, cmd Command)

// CommandProcessor dispatches client commands. Registered handlers run on the
// read goroutine; the fallback runs asynchronously with a timeout.
type CommandProcessor struct {
	hub             *Hub
	mu              sync.RWMutex
	handlers        map[string]CommandHandler
	fallback        CommandHandler
	fallbackTimeout time.Duration
}

func NewCommandProcessor(hub *Hub, fallback CommandHandler) *CommandProcessor {
	processor := &CommandProcessor{
		hub:             hub,
		handlers:        make(map[string]CommandHandler),
		fallback:        fallback,
		fallbackTimeout: 10 * time.Second,
	}
	processor.Register("subscribe", processor.handleSubscribe)
	processor.Register("unsubscribe", processor.handleUnsubscribe)
	processor.Register("ping", processor.handlePing)
	return processor
}

func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	if handler == nil {
		return
	}
	key := normalizeAction(action)
	if key == "" {
		return
	}
	p.mu.Lock()
	p.handlers[key] = handler
	p.mu.Unlock()
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}

	action := cmd.actionKey()
	if action == "" {
		return
	}

	p.mu.RLock()
	handler, ok := p.handlers[action]
	p.mu.RUnlock()
	if ok {
		handler(context.Background(), client, cmd)
		return
	}

	if p.fallback == nil {
		slog.Debug("ws command ignored", slog.String("userId", client.id.UserID), slog.String("sessionId", client.id.SessionID), slog.String("action", action))
		client.SendDomainMessage(ErrorMessage("unknown action: "+action, time.Now()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.fallbackTimeout)
	go func() {
		defer cancel()
		p.fallback(ctx, client, cmd)
	}()
}

func (p *CommandProcessor) handleSubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		slog.Debug("ws subscribe ignored empty topic", slog.String("userId", client.id.UserID), slog.String("sessionId", client.id.SessionID))
		return
	}
	p.hub.subscribe(client, topic)
	slog.Debug("ws subscribe", slog.String("userId", client.id.UserID), slog.String("sessionId", client.id.SessionID), slog.String("topic", topic))
}

func (p *CommandProcessor) handleUnsubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	p.hub.unsubscribe(client, topic)
}

func (p *CommandProcessor) handlePing(_ context.Context, client *Client, _ Command) {
	ack := domain.Message{
		Topic:     domain.TopicSystemPong,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionPong,
		Timestamp: time.Now().UTC(),
	}
	client.SendDomainMessage(&ack)
}

// ErrorMessage is the system.error envelope sent back for rejected commands.
func ErrorMessage(reason string, now time.Time) *domain.Message {
	msg := domain.NewMessage(domain.TopicSystemError, map[string]string{"error": reason}, now)
	return msg
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
