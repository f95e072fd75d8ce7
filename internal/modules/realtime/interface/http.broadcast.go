package transport

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"elyseeWeb/internal/modules/realtime/application/usecase"
	"elyseeWeb/internal/modules/realtime/domain"
)

// BroadcastRequest represents the payload for broadcasting a message via REST API
type BroadcastRequest struct {
	Event     string         `json:"event"`
	Entity    string         `json:"entity,omitempty"`
	Reference string         `json:"reference,omitempty"`
	Status    string         `json:"status,omitempty"`
	Note      string         `json:"note,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// BroadcastResponse represents the response after broadcasting
type BroadcastResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Topic   string `json:"topic"`
}

// NewBroadcastHTTPHandler lets the back office push reservation updates, such
// as a confirmation, to every connected concierge screen.
func NewBroadcastHTTPHandler(broadcastUC *usecase.BroadcastUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req BroadcastRequest
		if err := c.Bind(&req); err != nil {
			slog.Warn("broadcast http: invalid request body", slog.Any("error", err))
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		action := strings.ToLower(strings.TrimSpace(req.Event))
		if action == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "event field is required")
		}
		entity := normalizeEntity(req.Entity)
		if entity == "" {
			entity = domain.ReservationsEntity
		}
		topic := domain.CustomTopic(entity, action)
		if !allowedBroadcastTopic(topic) {
			return echo.NewHTTPError(http.StatusBadRequest, "topic "+topic+" cannot be broadcast")
		}

		data := make(map[string]any, len(req.Data)+3)
		for k, v := range req.Data {
			data[k] = v
		}
		if req.Reference != "" {
			data["reference"] = req.Reference
		}
		if req.Status != "" {
			data["status"] = req.Status
		}
		if req.Note != "" {
			data["note"] = req.Note
		}

		msg := &domain.Message{
			Topic:      topic,
			Entity:     entity,
			Action:     action,
			ResourceID: req.Reference,
			Data:       data,
			Timestamp:  time.Now().UTC(),
		}
		broadcastUC.Execute(c.Request().Context(), msg)

		slog.Info("broadcast http: message sent",
			slog.String("topic", topic),
			slog.String("reference", req.Reference),
		)

		return c.JSON(http.StatusOK, BroadcastResponse{
			Success: true,
			Message: "Message broadcasted successfully",
			Topic:   topic,
		})
	}
}
