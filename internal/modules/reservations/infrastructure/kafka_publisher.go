package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"elyseeWeb/internal/modules/reservations/application/port"
	"elyseeWeb/internal/modules/reservations/domain"
	rtdomain "elyseeWeb/internal/modules/realtime/domain"
	"elyseeWeb/internal/platform/broker"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes reservation events to a Kafka topic using the same
// envelope the broker consumers decode.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

func NewKafkaPublisher(brokers []string, topic string, timeout time.Duration) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}, timeout)
}

func newKafkaPublisher(w messageWriter, timeout time.Duration) *KafkaPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaPublisher{writer: w, timeout: timeout}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt domain.Requested) error {
	value, err := json.Marshal(broker.Event{
		Entity:     rtdomain.ReservationsEntity,
		Action:     rtdomain.ActionRequested,
		ResourceID: evt.Reference,
		Topic:      domain.TopicRequested,
		Data:       evt,
		OccurredAt: evt.SubmittedAt,
	})
	if err != nil {
		return fmt.Errorf("encode reservation event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(evt.Reference), Value: value}); err != nil {
		return fmt.Errorf("kafka publish %s: %w", evt.Reference, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

var _ port.EventPublisher = (*KafkaPublisher)(nil)
