package domain

import (
	"strings"
	"time"
)

// Message is the envelope exchanged between the broker, the hub and websocket clients.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity,omitempty"`
	Action     string            `json:"action,omitempty"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewMessage builds a message for topic, deriving entity and action from it.
func NewMessage(topic string, data any, now time.Time) *Message {
	entity, action := SplitTopic(topic)
	return &Message{
		Topic:     topic,
		Entity:    entity,
		Action:    action,
		Data:      data,
		Timestamp: now.UTC(),
	}
}

// SplitTopic splits "entity.action" at the first dot.
func SplitTopic(topic string) (string, string) {
	entity, action, ok := strings.Cut(strings.TrimSpace(topic), ".")
	if !ok {
		return entity, ""
	}
	return entity, action
}
