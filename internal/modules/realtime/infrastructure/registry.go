package infrastructure

import (
	"context"
	"log/slog"
	"strings"

	"elyseeWeb/internal/modules/realtime/application/port"
	"elyseeWeb/internal/modules/realtime/domain"
)

// HandlerRegistry routes broker messages to the handler registered for their
// topic, falling back to the handler registered for their entity.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[strings.ToLower(h.Topic())] = h
}

func (r *HandlerRegistry) Dispatch(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	for _, key := range []string{msg.Topic, msg.Entity} {
		if handler, ok := r.handlers[strings.ToLower(strings.TrimSpace(key))]; ok {
			return handler.Handle(ctx, msg)
		}
	}
	slog.Debug("broker message without handler", slog.String("topic", msg.Topic), slog.String("entity", msg.Entity))
	return nil
}
