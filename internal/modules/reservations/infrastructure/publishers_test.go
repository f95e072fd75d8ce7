package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/segmentio/kafka-go"

	"elyseeWeb/internal/modules/reservations/domain"
	rtdomain "elyseeWeb/internal/modules/realtime/domain"
	"elyseeWeb/internal/platform/broker"
)

func sampleEvent() domain.Requested {
	return domain.Requested{
		Reference: "ref-42",
		Channel:   domain.ChannelEmail,
		Request: domain.Request{
			Name:     "Amelia Hart",
			Email:    "amelia@example.com",
			Phone:    "+971 50 765 4321",
			Date:     "2026-10-20",
			Time:     "20:00",
			Guests:   2,
			Occasion: domain.OccasionProposal,
			Message:  "Ring arrives with dessert",
		},
		SubmittedAt: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC),
	}
}

type writerStub struct {
	msgs []kafka.Message
	err  error
}

func (w *writerStub) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *writerStub) Close() error { return nil }

func TestKafkaPublisherEnvelope(t *testing.T) {
	w := &writerStub{}
	p := newKafkaPublisher(w, 0)

	if err := p.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.msgs) != 1 || string(w.msgs[0].Key) != "ref-42" {
		t.Fatalf("unexpected messages: %+v", w.msgs)
	}

	var env broker.Event
	if err := json.Unmarshal(w.msgs[0].Value, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Topic != domain.TopicRequested || env.Entity != rtdomain.ReservationsEntity || env.ResourceID != "ref-42" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	w.err = errors.New("broker unreachable")
	if err := p.Publish(context.Background(), sampleEvent()); err == nil || !strings.Contains(err.Error(), "ref-42") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

type broadcasterStub struct{ msgs []*rtdomain.Message }

func (b *broadcasterStub) Broadcast(_ context.Context, msg *rtdomain.Message) {
	b.msgs = append(b.msgs, msg)
}

func TestHubPublisher(t *testing.T) {
	b := &broadcasterStub{}
	if err := NewHubPublisher(b).Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.msgs) != 1 {
		t.Fatalf("expected one broadcast, got %d", len(b.msgs))
	}
	msg := b.msgs[0]
	if msg.Topic != "reservations.requested" || msg.Action != "requested" || msg.ResourceID != "ref-42" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

type telegramStub struct{ sent []tgbotapi.Chattable }

func (s *telegramStub) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent = append(s.sent, c)
	return tgbotapi.Message{MessageID: 1}, nil
}

func TestTelegramNotifier(t *testing.T) {
	stub := &telegramStub{}
	n := newTelegramNotifier(stub, -100123)

	if err := n.Notify(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg, ok := stub.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("unexpected chattable %T", stub.sent[0])
	}
	if msg.ChatID != -100123 {
		t.Fatalf("unexpected chat id %d", msg.ChatID)
	}
	for _, want := range []string{"Amelia Hart · 2 Guests · 2026-10-20 20:00 · Proposal", "Ref: ref-42", "Ring arrives with dessert"} {
		if !strings.Contains(msg.Text, want) {
			t.Fatalf("notification missing %q:\n%s", want, msg.Text)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.Notify(ctx, sampleEvent()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
