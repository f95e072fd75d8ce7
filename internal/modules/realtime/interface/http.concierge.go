package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"elyseeWeb/internal/modules/realtime/application/usecase"
	domain "elyseeWeb/internal/modules/realtime/domain"
	"elyseeWeb/internal/modules/realtime/infrastructure"
	"elyseeWeb/internal/shared/auth"
	"elyseeWeb/internal/shared/httputil"
)

// ConnectionObserver is told when concierge streams open and close.
type ConnectionObserver interface {
	ConciergeAttached()
	ConciergeDetached()
}

var conciergeErrors = httputil.NewErrorMapper().
	WithMapping(auth.ErrMissingToken, http.StatusUnauthorized, "missing token").
	WithMapping(auth.ErrInvalidToken, http.StatusUnauthorized, "invalid token").
	WithMapping(auth.ErrForbidden, http.StatusForbidden, "forbidden").
	WithMapping(usecase.ErrConciergeDisabled, http.StatusServiceUnavailable, "concierge stream disabled")

// NewConciergeWebsocketHandler exposes /ws/concierge for restaurant staff. The
// JWT comes from the token query parameter or the Authorization header.
func NewConciergeWebsocketHandler(hub *infrastructure.Hub, connectUC *usecase.ConnectConciergeUseCase, upgrader *websocket.Upgrader, observer ConnectionObserver) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		token := auth.ExtractToken(c.Request(), "token")
		output, err := connectUC.Execute(c.Request().Context(), usecase.ConnectConciergeInput{Token: token})
		if err != nil {
			info := conciergeErrors.Map(err)
			slog.Warn("concierge ws rejected", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Int("status", info.Status), slog.Any("error", err))
			return echo.NewHTTPError(info.Status, info.Message)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("concierge ws upgrade failed", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Any("error", err))
			return nil
		}

		claims := output.Claims
		userID := claims.Subject
		sessionID := claims.SessionID
		if sessionID == "" {
			sessionID = "concierge-" + uuid.NewString()
		}
		client := infrastructure.NewClient(hub, conn, infrastructure.Identity{UserID: userID, SessionID: sessionID}, 32, nil)
		if observer != nil {
			observer.ConciergeAttached()
			client.AddCloseHook(func(*infrastructure.Client) { observer.ConciergeDetached() })
		}
		hub.AttachClient(client, output.Topics)

		go client.WritePump()
		go client.ReadPump()

		connected := &domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				"sessionId": sessionID,
				"userId":    userID,
			},
			Data: map[string]any{
				"mode":   "concierge",
				"topics": output.Topics,
				"roles":  claims.Roles,
			},
			Timestamp: time.Now().UTC(),
		}
		client.SendDomainMessage(connected)

		slog.Info("concierge ws connected", slog.String("userId", userID), slog.String("sessionId", sessionID), slog.String("ip", peerIP), slog.String("reqID", requestID))
		return nil
	}
}

// RequireStaff rejects requests without a valid staff JWT and stores the
// claims under "claims".
func RequireStaff(validator auth.TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if validator == nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "concierge stream disabled")
			}
			claims, err := validator.Validate(auth.ExtractToken(c.Request(), ""))
			if err != nil {
				if !errors.Is(err, auth.ErrMissingToken) {
					slog.Warn("staff request rejected", slog.String("path", c.Path()), slog.Any("error", err))
				}
				info := conciergeErrors.Map(err)
				return echo.NewHTTPError(info.Status, info.Message)
			}
			c.Set("claims", claims)
			return next(c)
		}
	}
}
