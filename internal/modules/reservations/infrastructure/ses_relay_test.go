package infrastructure

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"elyseeWeb/internal/modules/reservations/domain"
)

type sesStub struct {
	input *sesv2.SendEmailInput
	err   error
}

func (s *sesStub) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	s.input = params
	if s.err != nil {
		return nil, s.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESRelaySend(t *testing.T) {
	stub := &sesStub{}
	relay := newSESRelay(stub, "reservations@elysee.example", []string{"concierge@elysee.example"})

	req := domain.Request{Name: "Amelia", Email: "amelia@example.com", Date: "2026-10-20", Guests: 4}
	if err := relay.Send(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := stub.input
	if aws.ToString(in.FromEmailAddress) != "reservations@elysee.example" {
		t.Fatalf("unexpected sender %q", aws.ToString(in.FromEmailAddress))
	}
	if len(in.ReplyToAddresses) != 1 || in.ReplyToAddresses[0] != "amelia@example.com" {
		t.Fatalf("unexpected reply-to %v", in.ReplyToAddresses)
	}
	if got := aws.ToString(in.Content.Simple.Subject.Data); got != "Reservation request: Amelia on 2026-10-20" {
		t.Fatalf("unexpected subject %q", got)
	}
	if body := aws.ToString(in.Content.Simple.Body.Text.Data); !strings.Contains(body, "Guests: 4 Guests") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSESRelayErrors(t *testing.T) {
	if err := newSESRelay(&sesStub{}, "", nil).Send(context.Background(), domain.Request{}); err == nil {
		t.Fatal("expected configuration error")
	}

	stub := &sesStub{err: errors.New("MessageRejected")}
	relay := newSESRelay(stub, "a@b.co", []string{"c@d.co"})
	if err := relay.Send(context.Background(), domain.Request{Name: "A"}); err == nil || !strings.Contains(err.Error(), "MessageRejected") {
		t.Fatalf("expected wrapped ses error, got %v", err)
	}
}
