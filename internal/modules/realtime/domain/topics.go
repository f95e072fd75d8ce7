package domain

import "strings"

const (
	SystemEntity       = "system"
	ReservationsEntity = "reservations"
	ViewerEntity       = "viewer"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionState     = "state"
	ActionClosed    = "closed"
	ActionRequested = "requested"

	TopicSystemConnected = SystemEntity + "." + ActionConnected
	TopicSystemPong      = SystemEntity + "." + ActionPong
	TopicSystemError     = SystemEntity + "." + ActionError

	TopicViewerState  = ViewerEntity + "." + ActionState
	TopicViewerClosed = ViewerEntity + "." + ActionClosed

	// Wildcard suffix matching every action of an entity, as in "reservations.*".
	Wildcard = "*"
)

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}

// EntityWildcard returns the topic that subscribes to every action of entity.
func EntityWildcard(entity string) string {
	return CustomTopic(entity, Wildcard)
}
