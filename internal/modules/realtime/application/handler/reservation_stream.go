package handler

import (
	"context"
	"log/slog"
	"strings"

	"elyseeWeb/internal/modules/realtime/application/port"
	"elyseeWeb/internal/modules/realtime/application/usecase"
	"elyseeWeb/internal/modules/realtime/domain"
)

// EntityStreamHandler reenvía eventos de un tópico Kafka asociado a una entidad a los clientes WebSocket.
// Permite filtrar acciones permitidas para evitar ruido innecesario.
type EntityStreamHandler struct {
	entity         string
	allowedActions map[string]struct{}
	broadcastUC    *usecase.BroadcastUseCase
}

func NewEntityStreamHandler(entity string, allowedActions []string, broadcastUC *usecase.BroadcastUseCase) *EntityStreamHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &EntityStreamHandler{
		entity:         strings.TrimSpace(entity),
		allowedActions: actionSet,
		broadcastUC:    broadcastUC,
	}
}

// NewReservationStreamHandler forwards reservation events to the concierge stream.
func NewReservationStreamHandler(broadcastUC *usecase.BroadcastUseCase) *EntityStreamHandler {
	return NewEntityStreamHandler(domain.ReservationsEntity, nil, broadcastUC)
}

func (h *EntityStreamHandler) Topic() string { return h.entity }

func (h *EntityStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[strings.ToLower(msg.Action)]; !ok {
			slog.Debug("entity-stream action skipped", slog.String("entity", h.entity), slog.String("action", msg.Action))
			return nil
		}
	}
	if msg.Entity == "" {
		msg.Entity = h.entity
	}
	if msg.Topic == "" && msg.Action != "" {
		msg.Topic = domain.CustomTopic(msg.Entity, msg.Action)
	}
	h.broadcastUC.Execute(ctx, msg)
	return nil
}

var _ port.TopicHandler = (*EntityStreamHandler)(nil)
