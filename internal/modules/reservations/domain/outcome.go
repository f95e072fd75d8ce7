package domain

import (
	"strings"
	"time"
)

// IndicatorDuration is how long a submission outcome stays visible.
const IndicatorDuration = 5 * time.Second

// Outcome is the result of the last submission attempt.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

// Indicator is the transient status banner under the reservation form.
type Indicator struct {
	Outcome Outcome   `json:"outcome"`
	Until   time.Time `json:"until"`
}

// NewIndicator shows outcome from now for IndicatorDuration.
func NewIndicator(outcome Outcome, now time.Time) Indicator {
	return Indicator{Outcome: outcome, Until: now.Add(IndicatorDuration)}
}

// Visible reports whether the indicator should still be rendered at now.
func (i Indicator) Visible(now time.Time) bool {
	return i.Outcome != OutcomeNone && now.Before(i.Until)
}

// Channel is how a guest hands the reservation over to the restaurant.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

// ParseChannel defaults to email for anything but an explicit WhatsApp choice.
func ParseChannel(raw string) Channel {
	if strings.EqualFold(strings.TrimSpace(raw), string(ChannelWhatsApp)) {
		return ChannelWhatsApp
	}
	return ChannelEmail
}
