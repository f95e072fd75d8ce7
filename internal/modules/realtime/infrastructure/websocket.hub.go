package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"elyseeWeb/internal/modules/realtime/domain"
)

// Hub fans messages out to websocket clients by topic. A subscription to
// "entity.*" receives every action of that entity.
type Hub struct {
	topics  map[string]map[*Client]struct{}
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		topics:  make(map[string]map[*Client]struct{}),
		clients: make(map[string]*Client),
	}
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.clients[c.key()]; ok && existing != c {
		h.detachLocked(existing)
	}
	h.clients[c.key()] = c
	slog.Info("ws client registered", slog.String("userId", c.id.UserID), slog.String("sessionId", c.id.SessionID), slog.String("scope", c.id.Scope))
}

func (h *Hub) subscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}
	h.topics[topic][c] = struct{}{}
	c.subscribed[topic] = struct{}{}
}

func (h *Hub) unsubscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.topics[topic]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(c.subscribed, topic)
	slog.Debug("ws client unsubscribed", slog.String("userId", c.id.UserID), slog.String("sessionId", c.id.SessionID), slog.String("topic", topic))
}

// DetachClient unregisters c and closes its connection.
func (h *Hub) DetachClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(c)
}

func (h *Hub) detachLocked(c *Client) {
	if c == nil {
		return
	}
	for topic := range c.subscribed {
		if subs, ok := h.topics[topic]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	if current, ok := h.clients[c.key()]; ok && current == c {
		delete(h.clients, c.key())
	}
	c.close()
	slog.Info("ws client detached", slog.String("userId", c.id.UserID), slog.String("sessionId", c.id.SessionID), slog.String("scope", c.id.Scope))
}

func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	if msg == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.Any("error", err))
		return
	}

	entity, _ := domain.SplitTopic(msg.Topic)

	h.mu.RLock()
	exact := h.topics[msg.Topic]
	wildcard := h.topics[domain.EntityWildcard(entity)]
	clients := make([]*Client, 0, len(exact)+len(wildcard))
	seen := make(map[*Client]struct{}, cap(clients))
	for _, set := range []map[*Client]struct{}{exact, wildcard} {
		for c := range set {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	targetUser := ""
	targetSession := ""
	targetScope := ""
	if msg.Metadata != nil {
		targetUser = strings.TrimSpace(msg.Metadata["userId"])
		targetSession = strings.TrimSpace(msg.Metadata["sessionId"])
		targetScope = strings.TrimSpace(msg.Metadata["scope"])
	}

	for _, c := range clients {
		if targetUser != "" && c.id.UserID != targetUser {
			continue
		}
		if targetSession != "" && c.id.SessionID != targetSession {
			continue
		}
		if targetScope != "" && c.id.Scope != targetScope {
			continue
		}
		c.enqueue(data)
	}
}

func (h *Hub) AttachClient(c *Client, topics []string) {
	h.registerClient(c)
	for _, topic := range topics {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			h.subscribe(c, trimmed)
		}
	}
	slog.Info("ws client attached", slog.String("userId", c.id.UserID), slog.String("sessionId", c.id.SessionID), slog.Any("topics", topics))
}
