package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"elyseeWeb/internal/modules/reservations/domain"
)

type relayStub struct {
	err   error
	calls int
	last  domain.Request
}

func (r *relayStub) Send(_ context.Context, req domain.Request) error {
	r.calls++
	r.last = req
	return r.err
}

type publisherStub struct {
	events []domain.Requested
	err    error
}

func (p *publisherStub) Publish(_ context.Context, evt domain.Requested) error {
	p.events = append(p.events, evt)
	return p.err
}

type notifierStub struct {
	events  []domain.Requested
	ctxErrs []error
	release chan struct{}
}

func (n *notifierStub) Notify(ctx context.Context, evt domain.Requested) error {
	if n.release != nil {
		<-n.release
	}
	n.events = append(n.events, evt)
	n.ctxErrs = append(n.ctxErrs, ctx.Err())
	return nil
}

type observerStub struct{ seen []string }

func (o *observerStub) ObserveSubmission(channel, outcome string) {
	o.seen = append(o.seen, channel+"/"+outcome)
}

var fixedNow = time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

func newUseCase(relay *relayStub, opts ...SubmitOption) *SubmitUseCase {
	base := []SubmitOption{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "ref-1" }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return NewSubmitUseCase(relay, "+971501234567", append(base, opts...)...)
}

func sampleRequest() domain.Request {
	return domain.Request{
		Name:     "Amelia Hart",
		Email:    "amelia@example.com",
		Phone:    "+971 50 765 4321",
		Date:     "2026-10-18",
		Guests:   2,
		Occasion: domain.OccasionProposal,
		Message:  "Please keep it a surprise",
	}
}

func TestSubmitFailureKeepsFormAndShowsError(t *testing.T) {
	relay := &relayStub{err: errors.New("emailjs: 400 The Public Key is invalid")}
	publisher := &publisherStub{}
	observer := &observerStub{}
	uc := newUseCase(relay, WithPublisher(publisher), WithObserver(observer))

	result, err := uc.Execute(context.Background(), sampleRequest(), domain.ChannelEmail)
	if !errors.Is(err, domain.ErrRelayFailed) {
		t.Fatalf("expected ErrRelayFailed, got %v", err)
	}
	if relay.calls != 1 {
		t.Fatalf("expected a single relay attempt, got %d", relay.calls)
	}
	if result.Outcome != domain.OutcomeError || !result.Indicator.Visible(fixedNow) {
		t.Fatalf("expected visible error indicator, got %+v", result.Indicator)
	}
	if result.Cleared || result.Form != domain.Normalize(sampleRequest()) {
		t.Fatalf("expected form fields to be retained, got %+v", result.Form)
	}
	if !strings.HasPrefix(result.WhatsAppURL, "https://wa.me/971501234567?text=") {
		t.Fatalf("expected whatsapp fallback, got %q", result.WhatsAppURL)
	}
	uc.Wait()
	if len(publisher.events) != 0 {
		t.Fatal("failed submissions must not be published")
	}
	if len(observer.seen) != 1 || observer.seen[0] != "email/error" {
		t.Fatalf("unexpected observations: %v", observer.seen)
	}
}

func TestSubmitSuccessClearsFormOnce(t *testing.T) {
	relay := &relayStub{}
	publisher := &publisherStub{err: errors.New("broker down")}
	notifier := &notifierStub{}
	uc := newUseCase(relay, WithPublisher(publisher), WithNotifier(notifier))

	result, err := uc.Execute(context.Background(), sampleRequest(), domain.ChannelEmail)
	if err != nil {
		t.Fatalf("expected success despite publisher failure, got %v", err)
	}
	if result.Outcome != domain.OutcomeSuccess || !result.Cleared {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Form != domain.NewRequest() {
		t.Fatalf("expected empty form, got %+v", result.Form)
	}
	if result.Reference != "ref-1" {
		t.Fatalf("unexpected reference %q", result.Reference)
	}
	if relay.last.Name != "Amelia Hart" {
		t.Fatalf("relay received %+v", relay.last)
	}
	uc.Wait()
	if len(publisher.events) != 1 || len(notifier.events) != 1 {
		t.Fatalf("expected one event and one notification, got %d and %d", len(publisher.events), len(notifier.events))
	}
	if !result.Indicator.Visible(fixedNow.Add(4*time.Second)) || result.Indicator.Visible(fixedNow.Add(5*time.Second)) {
		t.Fatal("success indicator should last five seconds")
	}
}

func TestSubmitAnnouncesAfterResponseOnDetachedContext(t *testing.T) {
	notifier := &notifierStub{release: make(chan struct{})}
	uc := newUseCase(&relayStub{}, WithNotifier(notifier))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Result, 1)
	go func() {
		result, _ := uc.Execute(ctx, sampleRequest(), domain.ChannelEmail)
		done <- result
	}()

	select {
	case result := <-done:
		if result.Outcome != domain.OutcomeSuccess {
			t.Fatalf("unexpected result: %+v", result)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("response waited for the concierge notification")
	}

	cancel()
	close(notifier.release)
	uc.Wait()
	if len(notifier.events) != 1 || notifier.ctxErrs[0] != nil {
		t.Fatalf("notification should survive the request context, got %d events and %v", len(notifier.events), notifier.ctxErrs)
	}
}

func TestSubmitRejectsDatePassedInDubai(t *testing.T) {
	// 21:00 UTC on the 15th is already the 16th in Dubai.
	late := time.Date(2026, 10, 15, 21, 0, 0, 0, time.UTC)
	relay := &relayStub{}
	uc := newUseCase(relay, WithClock(func() time.Time { return late }))

	req := sampleRequest()
	req.Date = "2026-10-15"
	result, err := uc.Execute(context.Background(), req, domain.ChannelEmail)
	if !errors.Is(err, domain.ErrInvalidRequest) || relay.calls != 0 {
		t.Fatalf("expected a past-date rejection, got %v", err)
	}
	if len(result.Errors) != 1 || result.Errors[0].Field != "date" {
		t.Fatalf("unexpected field errors: %+v", result.Errors)
	}

	req.Date = "2026-10-16"
	if _, err := uc.Execute(context.Background(), req, domain.ChannelEmail); err != nil {
		t.Fatalf("today in Dubai should be bookable, got %v", err)
	}
}

func TestSubmitValidationNeverCallsRelay(t *testing.T) {
	relay := &relayStub{}
	uc := newUseCase(relay)

	req := sampleRequest()
	req.Date = "2026-10-01"
	result, err := uc.Execute(context.Background(), req, domain.ChannelEmail)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if relay.calls != 0 {
		t.Fatal("relay must not be called for invalid requests")
	}
	if len(result.Errors) != 1 || result.Errors[0].Field != "date" {
		t.Fatalf("unexpected field errors: %+v", result.Errors)
	}
	if result.Indicator.Visible(fixedNow) {
		t.Fatal("validation failures do not show the relay indicator")
	}
}

func TestSubmitWhatsAppSkipsRelay(t *testing.T) {
	relay := &relayStub{}
	uc := newUseCase(relay)

	result, err := uc.Execute(context.Background(), domain.Request{Name: "Omar"}, domain.ChannelWhatsApp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if relay.calls != 0 {
		t.Fatal("whatsapp submissions never reach the relay")
	}
	if !strings.Contains(result.WhatsAppURL, "Omar") {
		t.Fatalf("expected the composed message in the link, got %q", result.WhatsAppURL)
	}
}

func TestSubmitWithoutRelay(t *testing.T) {
	uc := NewSubmitUseCase(nil, "971501234567", WithClock(func() time.Time { return fixedNow }))

	_, err := uc.Execute(context.Background(), sampleRequest(), domain.ChannelEmail)
	if !errors.Is(err, domain.ErrRelayFailed) || !errors.Is(err, domain.ErrRelayDisabled) {
		t.Fatalf("expected disabled relay failure, got %v", err)
	}
}

func TestEnquiryLink(t *testing.T) {
	uc := newUseCase(&relayStub{})
	if !strings.HasPrefix(uc.EnquiryLink(), "https://wa.me/971501234567?text=Hello%20%C3%89lys%C3%A9e") {
		t.Fatalf("unexpected enquiry link %q", uc.EnquiryLink())
	}
	if got := uc.MessageLink(""); got != "https://wa.me/971501234567" {
		t.Fatalf("unexpected bare link %q", got)
	}
}
