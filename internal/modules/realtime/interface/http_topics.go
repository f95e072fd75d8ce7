package transport

import (
	"strings"

	domain "elyseeWeb/internal/modules/realtime/domain"
)

// Staff may only push to entities the concierge screens render.
var broadcastEntities = map[string]struct{}{
	domain.ReservationsEntity: {},
}

func allowedBroadcastTopic(topic string) bool {
	entity, action := domain.SplitTopic(topic)
	if action == "" || action == domain.Wildcard {
		return false
	}
	_, ok := broadcastEntities[entity]
	return ok
}

func normalizeEntity(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	switch trimmed {
	case "", "-", "default":
		return ""
	case "reservation", "reservations", "booking", "bookings":
		return domain.ReservationsEntity
	case "viewer", "viewers":
		return domain.ViewerEntity
	case "system":
		return domain.SystemEntity
	default:
		return trimmed
	}
}
