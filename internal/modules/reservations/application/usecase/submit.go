package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"elyseeWeb/internal/modules/reservations/application/port"
	"elyseeWeb/internal/modules/reservations/domain"
)

// Result is what the reservation page renders after a submission.
type Result struct {
	Channel     domain.Channel            `json:"channel"`
	Outcome     domain.Outcome            `json:"outcome,omitempty"`
	Indicator   domain.Indicator          `json:"indicator"`
	Form        domain.Request            `json:"form"`
	Cleared     bool                      `json:"cleared"`
	Reference   string                    `json:"reference,omitempty"`
	WhatsAppURL string                    `json:"whatsappUrl,omitempty"`
	Errors      []*domain.ValidationError `json:"-"`
}

// announceTimeout bounds the publish and notification that follow a relayed
// request once the guest's request is gone.
const announceTimeout = 15 * time.Second

type SubmitUseCase struct {
	relay     port.EmailRelay
	publisher port.EventPublisher
	notifier  port.Notifier
	observer  port.SubmissionObserver
	phone     string
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
	pending   sync.WaitGroup
}

type SubmitOption func(*SubmitUseCase)

func WithPublisher(p port.EventPublisher) SubmitOption {
	return func(uc *SubmitUseCase) { uc.publisher = p }
}

func WithNotifier(n port.Notifier) SubmitOption {
	return func(uc *SubmitUseCase) { uc.notifier = n }
}

func WithObserver(o port.SubmissionObserver) SubmitOption {
	return func(uc *SubmitUseCase) { uc.observer = o }
}

func WithClock(now func() time.Time) SubmitOption {
	return func(uc *SubmitUseCase) { uc.now = now }
}

func WithIDGenerator(gen func() string) SubmitOption {
	return func(uc *SubmitUseCase) { uc.newID = gen }
}

func WithLogger(logger *slog.Logger) SubmitOption {
	return func(uc *SubmitUseCase) { uc.logger = logger }
}

// NewSubmitUseCase wires the relay and the WhatsApp number used for deep links.
func NewSubmitUseCase(relay port.EmailRelay, whatsAppPhone string, opts ...SubmitOption) *SubmitUseCase {
	uc := &SubmitUseCase{
		relay:  relay,
		phone:  whatsAppPhone,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute submits req over channel. An email relay failure keeps the form,
// shows the error indicator and offers the WhatsApp link instead; it is not
// retried. Events and notifications after a relayed request are best effort
// and run in the background, outliving ctx.
func (uc *SubmitUseCase) Execute(ctx context.Context, req domain.Request, channel domain.Channel) (Result, error) {
	req = domain.Normalize(req)
	now := uc.now().In(domain.RestaurantZone)

	if channel == domain.ChannelWhatsApp {
		uc.observe(channel, "redirected")
		return Result{
			Channel:     channel,
			Form:        req,
			WhatsAppURL: uc.WhatsAppLink(req),
		}, nil
	}

	if err := req.Validate(now); err != nil {
		uc.observe(channel, "invalid")
		return Result{Channel: channel, Form: req, Errors: domain.FieldErrors(err)}, err
	}

	if err := uc.send(ctx, req); err != nil {
		uc.logger.Warn("reservation relay failed",
			slog.String("date", req.Date),
			slog.Int("guests", req.Guests),
			slog.Any("error", err),
		)
		uc.observe(channel, string(domain.OutcomeError))
		return Result{
			Channel:     channel,
			Outcome:     domain.OutcomeError,
			Indicator:   domain.NewIndicator(domain.OutcomeError, now),
			Form:        req,
			WhatsAppURL: uc.WhatsAppLink(req),
		}, fmt.Errorf("%w: %w", domain.ErrRelayFailed, err)
	}

	evt := domain.Requested{
		Reference:   uc.newID(),
		Channel:     channel,
		Request:     req,
		SubmittedAt: now.UTC(),
	}
	uc.logger.Info("reservation relayed",
		slog.String("reference", evt.Reference),
		slog.String("date", req.Date),
		slog.Int("guests", req.Guests),
	)
	uc.observe(channel, string(domain.OutcomeSuccess))
	uc.announce(ctx, evt)

	return Result{
		Channel:   channel,
		Outcome:   domain.OutcomeSuccess,
		Indicator: domain.NewIndicator(domain.OutcomeSuccess, now),
		Form:      domain.NewRequest(),
		Cleared:   true,
		Reference: evt.Reference,
	}, nil
}

// WhatsAppLink returns the deep link carrying req as the chat message.
func (uc *SubmitUseCase) WhatsAppLink(req domain.Request) string {
	return domain.DeepLink(uc.phone, req.ComposeMessage())
}

// EnquiryLink returns the deep link behind the floating WhatsApp button.
func (uc *SubmitUseCase) EnquiryLink() string {
	return domain.DeepLink(uc.phone, domain.DefaultEnquiry)
}

// MessageLink opens a chat with the restaurant prefilled with message.
func (uc *SubmitUseCase) MessageLink(message string) string {
	return domain.DeepLink(uc.phone, message)
}

func (uc *SubmitUseCase) send(ctx context.Context, req domain.Request) error {
	if uc.relay == nil {
		return domain.ErrRelayDisabled
	}
	return uc.relay.Send(ctx, req)
}

// Wait blocks until every announcement in flight has finished.
func (uc *SubmitUseCase) Wait() { uc.pending.Wait() }

func (uc *SubmitUseCase) announce(ctx context.Context, evt domain.Requested) {
	if uc.publisher == nil && uc.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), announceTimeout)
	uc.pending.Add(1)
	go func() {
		defer uc.pending.Done()
		defer cancel()
		if uc.publisher != nil {
			if err := uc.publisher.Publish(ctx, evt); err != nil {
				uc.logger.Warn("reservation event publish failed", slog.String("reference", evt.Reference), slog.Any("error", err))
			}
		}
		if uc.notifier != nil {
			if err := uc.notifier.Notify(ctx, evt); err != nil && !errors.Is(err, context.Canceled) {
				uc.logger.Warn("concierge notification failed", slog.String("reference", evt.Reference), slog.Any("error", err))
			}
		}
	}()
}

func (uc *SubmitUseCase) observe(channel domain.Channel, outcome string) {
	if uc.observer != nil {
		uc.observer.ObserveSubmission(string(channel), outcome)
	}
}
