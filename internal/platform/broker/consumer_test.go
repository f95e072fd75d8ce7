package broker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"elyseeWeb/internal/modules/realtime/domain"
)

func TestDecodeMessage(t *testing.T) {
	cases := []struct {
		name       string
		msg        kafka.Message
		topic      string
		entity     string
		action     string
		resourceID string
	}{
		{
			name:       "envelope with topic",
			msg:        kafka.Message{Topic: "elysee.reservations", Value: []byte(`{"entity":"reservations","action":"requested","resourceId":"r-1","topic":"reservations.requested","data":{"name":"Amelia"}}`)},
			topic:      "reservations.requested",
			entity:     "reservations",
			action:     "requested",
			resourceID: "r-1",
		},
		{
			name:   "envelope without topic",
			msg:    kafka.Message{Topic: "elysee.reservations", Value: []byte(`{"action":"confirmed"}`)},
			topic:  "reservations.confirmed",
			entity: "reservations",
			action: "confirmed",
		},
		{
			name:   "raw payload",
			msg:    kafka.Message{Topic: "reservations.cancelled", Value: []byte(`not json`)},
			topic:  "reservations.cancelled",
			entity: "reservations",
			action: "cancelled",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeMessage(tc.msg)
			if got.Topic != tc.topic || got.Entity != tc.entity || got.Action != tc.action || got.ResourceID != tc.resourceID {
				t.Fatalf("unexpected message: %+v", got)
			}
			if got.Timestamp.IsZero() {
				t.Fatal("expected timestamp")
			}
		})
	}
}

type scriptedReader struct {
	messages []kafka.Message
	errs     []error
	closed   bool
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		return kafka.Message{}, err
	}
	if len(r.messages) > 0 {
		m := r.messages[0]
		r.messages = r.messages[1:]
		return m, nil
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *scriptedReader) Close() error {
	r.closed = true
	return nil
}

func TestConsumeStopsOnCancel(t *testing.T) {
	reader := &scriptedReader{
		errs: []error{errors.New("leader not available")},
		messages: []kafka.Message{
			{Topic: "elysee.reservations", Value: []byte(`{"entity":"reservations","action":"requested"}`)},
		},
	}
	consumer := &KafkaConsumer{reader: reader, topic: "elysee.reservations"}

	ctx, cancel := context.WithCancel(context.Background())
	received := make(chan *domain.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- consumer.Consume(ctx, func(msg *domain.Message) error {
			received <- msg
			return errors.New("handler failures are logged only")
		})
	}()

	select {
	case msg := <-received:
		if msg.Topic != "reservations.requested" {
			t.Fatalf("unexpected topic %q", msg.Topic)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("message was not delivered after a read error")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
	if !reader.closed {
		t.Fatal("reader should be closed on exit")
	}
}
