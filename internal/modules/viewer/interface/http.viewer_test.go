package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	content "elyseeWeb/internal/modules/content/domain"
	rtdomain "elyseeWeb/internal/modules/realtime/domain"
	"elyseeWeb/internal/modules/realtime/infrastructure"
	"elyseeWeb/internal/modules/viewer/domain"
)

type fixedCatalog struct{ catalog *content.Catalog }

func (f fixedCatalog) Catalog() *content.Catalog { return f.catalog }

type sessionCounter struct {
	opened chan struct{}
	closed chan struct{}
}

func (s *sessionCounter) ViewerOpened() { s.opened <- struct{}{} }
func (s *sessionCounter) ViewerClosed() { s.closed <- struct{}{} }

func newViewerServer(t *testing.T) (*httptest.Server, *sessionCounter) {
	t.Helper()
	catalog := fixedCatalog{catalog: &content.Catalog{Dishes: []content.Dish{{ID: 1, Name: "Truffle Risotto", VREnabled: true}}}}
	counter := &sessionCounter{opened: make(chan struct{}, 1), closed: make(chan struct{}, 1)}

	e := echo.New()
	e.GET("/ws/viewer/:dish", NewViewerWebsocketHandler(infrastructure.NewHub(), catalog, infrastructure.NewUpgrader(nil), counter))
	e.POST("/api/viewer/transform", NewTransformHandler(catalog))

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, counter
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func readSnapshot(t *testing.T, conn *websocket.Conn) (string, Snapshot) {
	t.Helper()
	var raw struct {
		Topic string   `json:"topic"`
		Data  Snapshot `json:"data"`
	}
	if err := conn.ReadJSON(&raw); err != nil {
		t.Fatalf("read: %v", err)
	}
	return raw.Topic, raw.Data
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestViewerUnknownDishIsNotFound(t *testing.T) {
	srv, _ := newViewerServer(t)

	for _, path := range []string{"/ws/viewer/42", "/ws/viewer/truffle"} {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, path), nil)
		if err == nil {
			t.Fatalf("%s: expected dial to fail", path)
		}
		if resp == nil || resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %+v", path, resp)
		}
	}
}

func TestViewerSessionAppliesCommandsInOrder(t *testing.T) {
	srv, counter := newViewerServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/viewer/1"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	waitFor(t, counter.opened, "session open")

	topic, snap := readSnapshot(t, conn)
	if topic != rtdomain.TopicViewerState || snap.DishID != 1 || snap.State.Zoom != 1 {
		t.Fatalf("unexpected initial snapshot %q %+v", topic, snap)
	}

	commands := []domain.Command{
		{Action: domain.ActionWheel, Payload: json.RawMessage(`{"deltaY":-100}`)},
		{Action: domain.ActionLayer, Payload: json.RawMessage(`{"value":"plating"}`)},
		{Action: domain.ActionPointer, Payload: json.RawMessage(`{"pointer":{"x":100,"y":0},"box":{"left":0,"top":0,"width":100,"height":100}}`)},
	}
	for _, cmd := range commands {
		if err := conn.WriteJSON(cmd); err != nil {
			t.Fatalf("write %s: %v", cmd.Action, err)
		}
	}

	var last Snapshot
	for range commands {
		topic, last = readSnapshot(t, conn)
		if topic != rtdomain.TopicViewerState {
			t.Fatalf("unexpected topic %q", topic)
		}
	}
	if last.State.Layer != domain.LayerPlating || last.LayerName != "Plating Artistry" {
		t.Fatalf("expected plating layer, got %+v", last)
	}
	if last.State.Zoom <= 1 || last.State.Rotation != (domain.Rotation{X: -domain.MaxTilt, Y: domain.MaxTilt}) {
		t.Fatalf("unexpected zoom/rotation %+v", last.State)
	}

	if err := conn.WriteJSON(domain.Command{Action: "teleport"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var rejected rtdomain.Message
	if err := conn.ReadJSON(&rejected); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if rejected.Topic != rtdomain.TopicSystemError {
		t.Fatalf("expected system.error, got %q", rejected.Topic)
	}

	if err := conn.WriteJSON(map[string]string{"action": "subscribe", "topic": "reservations.*"}); err != nil {
		t.Fatalf("write subscribe: %v", err)
	}
	if err := conn.ReadJSON(&rejected); err != nil {
		t.Fatalf("read subscribe rejection: %v", err)
	}
	if rejected.Topic != rtdomain.TopicSystemError {
		t.Fatalf("expected subscribe to be rejected, got %q", rejected.Topic)
	}

	if err := conn.WriteJSON(domain.Command{Action: domain.ActionClose}); err != nil {
		t.Fatalf("write close: %v", err)
	}
	topic, snap = readSnapshot(t, conn)
	if topic != rtdomain.TopicViewerClosed || !snap.State.Closed {
		t.Fatalf("expected closed snapshot, got %q %+v", topic, snap)
	}
	waitFor(t, counter.closed, "session close")
}

func TestViewerDroppedConnectionClosesSession(t *testing.T) {
	srv, counter := newViewerServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/viewer/1"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitFor(t, counter.opened, "session open")
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
	conn.Close()
	waitFor(t, counter.closed, "session close")
}

func TestTransformEndpoint(t *testing.T) {
	srv, _ := newViewerServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		check  func(t *testing.T, s Snapshot)
	}{
		{
			name:   "applies commands to the supplied state",
			body:   `{"dishId":1,"state":{"mode":"ar","zoom":2.9,"layer":"ingredients"},"commands":[{"action":"wheel","payload":{"deltaY":-1}},{"action":"nutrition"}]}`,
			status: http.StatusOK,
			check: func(t *testing.T, s Snapshot) {
				if s.State.Mode != domain.ModeAR || s.State.Zoom != domain.MaxZoom || !s.State.ShowNutrition {
					t.Fatalf("unexpected state %+v", s.State)
				}
				if !strings.HasSuffix(s.Transform, "scale(3.000)") {
					t.Fatalf("unexpected transform %q", s.Transform)
				}
			},
		},
		{
			name:   "starts from the default state",
			body:   `{"dishId":1,"commands":[]}`,
			status: http.StatusOK,
			check: func(t *testing.T, s Snapshot) {
				if s.State != domain.NewState() {
					t.Fatalf("expected default state, got %+v", s.State)
				}
			},
		},
		{name: "unknown dish", body: `{"dishId":9,"commands":[]}`, status: http.StatusNotFound},
		{name: "unknown action", body: `{"dishId":1,"commands":[{"action":"spin"}]}`, status: http.StatusBadRequest},
		{name: "bad payload", body: `{"dishId":1,"commands":[{"action":"wheel"}]}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/viewer/transform", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.StatusCode)
			}
			if tt.check == nil {
				return
			}
			var snap Snapshot
			if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
				t.Fatalf("decode: %v", err)
			}
			tt.check(t, snap)
		})
	}
}
