package usecase

import (
	"context"
	"time"

	"elyseeWeb/internal/modules/realtime/application/port"
	"elyseeWeb/internal/modules/realtime/domain"
)

type BroadcastUseCase struct {
	broadcaster port.Broadcaster
	now         func() time.Time
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b, now: time.Now}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	if msg == nil {
		return
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = uc.now().UTC()
	}
	if msg.Topic == "" {
		msg.Topic = domain.CustomTopic(msg.Entity, msg.Action)
	}
	uc.broadcaster.Broadcast(ctx, msg)
}
