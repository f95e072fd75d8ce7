package infrastructure

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"elyseeWeb/internal/modules/realtime/domain"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1 << 16
)

// Conn is the part of *websocket.Conn the client drives.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	ReadJSON(v any) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Identity describes who is on the other end of a connection. Scope narrows
// targeted broadcasts, e.g. to one dish viewer.
type Identity struct {
	UserID    string
	SessionID string
	Scope     string
}

type Client struct {
	hub        *Hub
	conn       Conn
	send       chan []byte
	id         Identity
	commands   *CommandProcessor
	subscribed map[string]struct{}
	closeOnce  sync.Once
	closed     chan struct{}
	closeHooks []func(*Client)
	hookMu     sync.Mutex
}

// NewClient crea un cliente WebSocket con metadata de usuario y buffer configurable.
func NewClient(hub *Hub, conn Conn, id Identity, buf int, commandFn CommandHandler) *Client {
	if buf <= 0 {
		buf = 16
	}
	id.Scope = strings.TrimSpace(id.Scope)
	client := &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, buf),
		id:         id,
		subscribed: make(map[string]struct{}),
		closed:     make(chan struct{}),
	}
	client.commands = NewCommandProcessor(hub, commandFn)
	return client
}

func (c *Client) Identity() Identity { return c.id }

// RegisterCommand routes action to handler on the read goroutine, so commands
// for one client are handled in arrival order.
func (c *Client) RegisterCommand(action string, handler CommandHandler) {
	c.commands.Register(action, handler)
}

// Done is closed once the client has been detached.
func (c *Client) Done() <-chan struct{} { return c.closed }

func (c *Client) key() string {
	parts := []string{c.id.UserID, c.id.SessionID}
	if c.id.Scope != "" {
		parts = append(parts, c.id.Scope)
	}
	return strings.Join(parts, ":")
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.invokeCloseHooks()
	})
}

// AddCloseHook registers a callback that will be executed once when the client closes.
func (c *Client) AddCloseHook(fn func(*Client)) {
	if fn == nil {
		return
	}
	c.hookMu.Lock()
	c.closeHooks = append(c.closeHooks, fn)
	c.hookMu.Unlock()
}

func (c *Client) invokeCloseHooks() {
	c.hookMu.Lock()
	hooks := append([]func(*Client){}, c.closeHooks...)
	c.closeHooks = nil
	c.hookMu.Unlock()

	for _, hook := range hooks {
		func(h func(*Client)) {
			defer func() {
				if r := recover(); r != nil {
					slog.Warn("ws close hook panic", slog.Any("error", r))
				}
			}()
			h(c)
		}(hook)
	}
}

func (c *Client) SendDomainMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	c.enqueue(data)
}

func (c *Client) enqueue(data []byte) {
	select {
	case <-c.closed:
		return
	default:
	}
	select {
	case c.send <- data:
	default:
		slog.Warn("websocket send buffer full", slog.String("userId", c.id.UserID), slog.String("sessionId", c.id.SessionID), slog.String("scope", c.id.Scope))
		go c.hub.DetachClient(c)
	}
}

// WritePump drains queued messages to the connection until the client is
// detached, then flushes what is left, sends a close frame and closes the socket.
func (c *Client) WritePump() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.Any("error", err))
				go c.hub.DetachClient(c)
				return
			}
		case <-c.closed:
			c.flush()
			_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				slog.Warn("websocket ping error", slog.Any("error", err))
				go c.hub.DetachClient(c)
				return
			}
		}
	}
}

func (c *Client) flush() {
	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	defer c.hub.DetachClient(c)
	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", slog.String("userId", c.id.UserID), slog.String("sessionId", c.id.SessionID), slog.String("scope", c.id.Scope), slog.Any("error", err))
			}
			return
		}
		c.processCommand(cmd)
		select {
		case <-c.closed:
			return
		default:
		}
	}
}

func (c *Client) processCommand(cmd Command) {
	if c.commands == nil {
		return
	}
	c.commands.Process(c, cmd)
}
