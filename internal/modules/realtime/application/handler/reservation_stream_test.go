package handler

import (
	"context"
	"testing"

	"elyseeWeb/internal/modules/realtime/application/usecase"
	"elyseeWeb/internal/modules/realtime/domain"
)

type recordingBroadcaster struct {
	messages []*domain.Message
}

func (r *recordingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	r.messages = append(r.messages, msg)
}

func TestEntityStreamHandlerFiltersActions(t *testing.T) {
	rec := &recordingBroadcaster{}
	h := NewEntityStreamHandler("reservations", []string{"Requested"}, usecase.NewBroadcastUseCase(rec))

	if h.Topic() != "reservations" {
		t.Fatalf("unexpected topic %q", h.Topic())
	}
	if err := h.Handle(context.Background(), &domain.Message{Action: "deleted"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.messages) != 0 {
		t.Fatal("filtered actions must not be broadcast")
	}

	if err := h.Handle(context.Background(), &domain.Message{Action: "requested"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.messages) != 1 {
		t.Fatalf("expected one broadcast, got %d", len(rec.messages))
	}
	msg := rec.messages[0]
	if msg.Topic != "reservations.requested" || msg.Entity != "reservations" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("broadcast should stamp missing timestamps")
	}
}

func TestReservationStreamHandlerForwardsEverything(t *testing.T) {
	rec := &recordingBroadcaster{}
	h := NewReservationStreamHandler(usecase.NewBroadcastUseCase(rec))

	for _, action := range []string{"requested", "confirmed"} {
		_ = h.Handle(context.Background(), &domain.Message{Entity: "reservations", Action: action})
	}
	if len(rec.messages) != 2 {
		t.Fatalf("expected both events forwarded, got %d", len(rec.messages))
	}
}
