package domain

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"elyseeWeb/internal/shared/normalization"
)

const (
	MinGuests     = 1
	MaxGuests     = 8
	DefaultGuests = 2

	// DateLayout is the format produced by the browser's date input.
	DateLayout = "2006-01-02"
)

// RestaurantZone is Dubai time, which has no daylight saving. Reservation
// dates and opening hours are read in it.
var RestaurantZone = time.FixedZone("GST", 4*60*60)

// Today is the earliest bookable date at instant now.
func Today(now time.Time) string {
	return now.In(RestaurantZone).Format(DateLayout)
}

// Request is the reservation form as submitted. It is never persisted.
type Request struct {
	Name     string   `json:"name" form:"name" query:"name"`
	Email    string   `json:"email" form:"email" query:"email"`
	Phone    string   `json:"phone" form:"phone" query:"phone"`
	Date     string   `json:"date" form:"date" query:"date"`
	Time     string   `json:"time,omitempty" form:"time" query:"time"`
	Guests   int      `json:"guests" form:"guests" query:"guests"`
	Occasion Occasion `json:"occasion,omitempty" form:"occasion" query:"occasion"`
	Message  string   `json:"message,omitempty" form:"message" query:"message"`
}

// NewRequest is the empty form a guest starts from.
func NewRequest() Request {
	return Request{Guests: DefaultGuests}
}

// Normalize trims every field, lowercases the occasion and defaults the guest
// count. An unknown occasion is kept so Validate can reject it.
func Normalize(raw Request) Request {
	out := Request{
		Name:    strings.TrimSpace(raw.Name),
		Email:   strings.TrimSpace(raw.Email),
		Phone:   strings.TrimSpace(raw.Phone),
		Date:    strings.TrimSpace(raw.Date),
		Time:    strings.TrimSpace(raw.Time),
		Guests:  raw.Guests,
		Message: strings.TrimSpace(raw.Message),
	}
	out.Occasion = Occasion(normalization.Key(string(raw.Occasion)))
	if out.Guests == 0 {
		out.Guests = DefaultGuests
	}
	return out
}

// Validate checks the request against today's date in now's location. All
// failures are returned together; each one matches ErrInvalidRequest.
func (r Request) Validate(now time.Time) error {
	var errs []error
	add := func(field, reason string) {
		errs = append(errs, &ValidationError{Field: field, Reason: reason})
	}

	if r.Name == "" {
		add("name", "is required")
	}
	if r.Email == "" && r.Phone == "" {
		add("email", "an email address or phone number is required")
	}
	if r.Email != "" {
		if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
			add("email", "is not a valid address")
		}
	}
	if r.Phone != "" && len(normalization.Digits(r.Phone)) < 7 {
		add("phone", "is not a valid number")
	}

	if r.Date == "" {
		add("date", "is required")
	} else if day, err := time.ParseInLocation(DateLayout, r.Date, now.Location()); err != nil {
		add("date", "must use YYYY-MM-DD")
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if day.Before(today) {
			add("date", "is in the past")
		}
	}

	if r.Time != "" {
		if _, err := time.Parse("15:04", r.Time); err != nil {
			add("time", "must use HH:MM")
		}
	}
	if r.Guests < MinGuests || r.Guests > MaxGuests {
		add("guests", "must be between "+strconv.Itoa(MinGuests)+" and "+strconv.Itoa(MaxGuests))
	}
	if _, ok := ParseOccasion(string(r.Occasion)); !ok {
		add("occasion", "is not offered")
	}

	return errors.Join(errs...)
}
