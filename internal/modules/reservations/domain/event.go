package domain

import "time"

// TopicRequested carries every accepted reservation request.
const TopicRequested = "reservations.requested"

// Requested is the event emitted after a reservation email was relayed.
type Requested struct {
	Reference   string    `json:"reference"`
	Channel     Channel   `json:"channel"`
	Request     Request   `json:"request"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Summary is a one-line description for staff notifications.
func (e Requested) Summary() string {
	s := e.Request.Name + " · " + guestsLabel(e.Request.Guests) + " · " + e.Request.Date
	if e.Request.Time != "" {
		s += " " + e.Request.Time
	}
	if e.Request.Occasion != OccasionNone {
		s += " · " + e.Request.Occasion.Label()
	}
	return s
}
