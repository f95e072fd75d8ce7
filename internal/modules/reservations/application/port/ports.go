package port

import (
	"context"

	"elyseeWeb/internal/modules/reservations/domain"
)

// EmailRelay hands a reservation request to the transactional email provider.
type EmailRelay interface {
	Send(ctx context.Context, req domain.Request) error
}

// EventPublisher emits reservation events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, evt domain.Requested) error
}

// Notifier alerts the concierge team about a new request.
type Notifier interface {
	Notify(ctx context.Context, evt domain.Requested) error
}

// SubmissionObserver records submission outcomes.
type SubmissionObserver interface {
	ObserveSubmission(channel, outcome string)
}
