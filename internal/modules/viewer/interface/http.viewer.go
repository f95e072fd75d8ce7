package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	content "elyseeWeb/internal/modules/content/domain"
	rtdomain "elyseeWeb/internal/modules/realtime/domain"
	"elyseeWeb/internal/modules/realtime/infrastructure"
	"elyseeWeb/internal/modules/viewer/domain"
	"elyseeWeb/internal/shared/httputil"
)

// CatalogSource returns the catalog currently being served.
type CatalogSource interface {
	Catalog() *content.Catalog
}

// SessionObserver is told when viewer sessions open and close.
type SessionObserver interface {
	ViewerOpened()
	ViewerClosed()
}

// Snapshot is the payload of every viewer.state and viewer.closed message.
type Snapshot struct {
	DishID    int          `json:"dishId"`
	State     domain.State `json:"state"`
	Transform string       `json:"transform"`
	LayerName string       `json:"layerName"`
}

func snapshotOf(dishID int, s domain.State) Snapshot {
	return Snapshot{DishID: dishID, State: s, Transform: s.Transform(), LayerName: s.Layer.Label()}
}

var viewerErrors = httputil.NewErrorMapper().
	WithMapping(content.ErrDishNotFound, http.StatusNotFound, "dish not found").
	WithMapping(domain.ErrUnknownAction, http.StatusBadRequest, "unknown action").
	WithMapping(domain.ErrInvalidPayload, http.StatusBadRequest, "invalid payload")

// NewViewerWebsocketHandler exposes /ws/viewer/:dish. Each connection owns one
// viewer session; commands are applied in arrival order and answered with the
// resulting state.
func NewViewerWebsocketHandler(hub *infrastructure.Hub, catalog CatalogSource, upgrader *websocket.Upgrader, observer SessionObserver) echo.HandlerFunc {
	return func(c echo.Context) error {
		dish, err := lookupDish(catalog, c.Param("dish"))
		if err != nil {
			info := viewerErrors.Map(err)
			return echo.NewHTTPError(info.Status, info.Message)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("viewer ws upgrade failed", slog.Int("dishId", dish.ID), slog.Any("error", err))
			return nil
		}

		if observer != nil {
			observer.ViewerOpened()
		}
		session := domain.NewSession(dish, func() {
			if observer != nil {
				observer.ViewerClosed()
			}
		})

		identity := infrastructure.Identity{SessionID: "viewer-" + uuid.NewString(), Scope: "dish:" + strconv.Itoa(dish.ID)}
		client := infrastructure.NewClient(hub, conn, identity, 16, nil)
		for _, action := range domain.Actions {
			client.RegisterCommand(action, sessionCommand(hub, session))
		}
		// Viewer sockets are anonymous; hub topics stay staff-only.
		client.RegisterCommand("subscribe", rejectSubscription)
		client.AddCloseHook(func(*infrastructure.Client) { session.Close() })
		hub.AttachClient(client, nil)

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(rtdomain.NewMessage(rtdomain.TopicViewerState, snapshotOf(dish.ID, session.State()), time.Now()))
		slog.Info("viewer session opened", slog.Int("dishId", dish.ID), slog.String("sessionId", identity.SessionID))
		return nil
	}
}

func sessionCommand(hub *infrastructure.Hub, session *domain.Session) infrastructure.CommandHandler {
	return func(_ context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		state, err := session.Apply(domain.Command{Action: cmd.Action, Payload: cmd.Payload})
		if err != nil {
			if errors.Is(err, domain.ErrSessionClosed) {
				hub.DetachClient(client)
				return
			}
			client.SendDomainMessage(infrastructure.ErrorMessage(err.Error(), time.Now()))
			return
		}

		dishID := session.Dish().ID
		if state.Closed {
			client.SendDomainMessage(rtdomain.NewMessage(rtdomain.TopicViewerClosed, snapshotOf(dishID, state), time.Now()))
			slog.Info("viewer session closed", slog.Int("dishId", dishID), slog.String("sessionId", client.Identity().SessionID))
			hub.DetachClient(client)
			return
		}
		client.SendDomainMessage(rtdomain.NewMessage(rtdomain.TopicViewerState, snapshotOf(dishID, state), time.Now()))
	}
}

func rejectSubscription(_ context.Context, client *infrastructure.Client, _ infrastructure.Command) {
	client.SendDomainMessage(infrastructure.ErrorMessage("subscriptions are not available on viewer sessions", time.Now()))
}

func lookupDish(catalog CatalogSource, raw string) (content.Dish, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return content.Dish{}, content.ErrDishNotFound
	}
	return catalog.Catalog().Dish(id)
}

// TransformRequest evaluates commands against a client-held state.
type TransformRequest struct {
	DishID   int              `json:"dishId"`
	State    *domain.State    `json:"state,omitempty"`
	Commands []domain.Command `json:"commands"`
}

// NewTransformHandler serves POST /api/viewer/transform for clients without
// websockets. The state travels with the request and nothing is kept.
func NewTransformHandler(catalog CatalogSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req TransformRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		if _, err := catalog.Catalog().Dish(req.DishID); err != nil {
			info := viewerErrors.Map(err)
			return echo.NewHTTPError(info.Status, info.Message)
		}

		state := domain.NewState()
		if req.State != nil {
			state = req.State.Normalize()
		}
		for _, cmd := range req.Commands {
			next, err := domain.Apply(state, cmd)
			if err != nil {
				info := viewerErrors.Map(err)
				return echo.NewHTTPError(info.Status, info.Message+": "+cmd.Action)
			}
			state = next
		}
		return c.JSON(http.StatusOK, snapshotOf(req.DishID, state))
	}
}
