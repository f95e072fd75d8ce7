package infrastructure

import (
	"context"

	"elyseeWeb/internal/modules/reservations/application/port"
	"elyseeWeb/internal/modules/reservations/domain"
	rtport "elyseeWeb/internal/modules/realtime/application/port"
	rtdomain "elyseeWeb/internal/modules/realtime/domain"
)

// HubPublisher delivers reservation events straight to the in-process hub
// when no broker is configured.
type HubPublisher struct {
	broadcaster rtport.Broadcaster
}

func NewHubPublisher(b rtport.Broadcaster) *HubPublisher {
	return &HubPublisher{broadcaster: b}
}

func (p *HubPublisher) Publish(ctx context.Context, evt domain.Requested) error {
	msg := rtdomain.NewMessage(domain.TopicRequested, evt, evt.SubmittedAt)
	msg.ResourceID = evt.Reference
	p.broadcaster.Broadcast(ctx, msg)
	return nil
}

var _ port.EventPublisher = (*HubPublisher)(nil)
