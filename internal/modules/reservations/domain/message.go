package domain

import (
	"net/url"
	"strconv"
	"strings"

	"elyseeWeb/internal/shared/normalization"
)

// ConciergeName is the addressee of every reservation email.
const ConciergeName = "Élysée Concierge"

// DefaultEnquiry is the pre-filled text of the floating WhatsApp button.
const DefaultEnquiry = "Hello Élysée Fine Dining Team,\n\n" +
	"I'm interested in making a reservation and would like to know about:\n" +
	"• Available time slots\n" +
	"• Special occasion arrangements\n" +
	"• Chef's tasting menu details\n" +
	"• Wine pairing options\n\n" +
	"Looking forward to your response!\n\n" +
	"Best regards,\n[Your Name]"

// ComposeMessage renders the request as the plain text sent over WhatsApp or
// used as an email body.
func (r Request) ComposeMessage() string {
	var b strings.Builder
	b.WriteString("Hello Élysée Fine Dining,\n\n")
	b.WriteString("I would like to make a reservation.\n\n")
	line := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte('\n')
	}
	line("Name", r.Name)
	line("Email", r.Email)
	line("Phone", r.Phone)
	line("Date", r.Date)
	line("Time", r.Time)
	if r.Guests > 0 {
		line("Guests", guestsLabel(r.Guests))
	}
	if o, ok := ParseOccasion(string(r.Occasion)); ok && o != OccasionNone {
		line("Occasion", o.Label())
	}
	if r.Message != "" {
		b.WriteString("\n")
		b.WriteString(r.Message)
		b.WriteByte('\n')
	}
	b.WriteString("\nBest regards,\n")
	if r.Name != "" {
		b.WriteString(r.Name)
	} else {
		b.WriteString("[Your Name]")
	}
	return b.String()
}

// TemplateParams is the flat parameter set handed to the email template.
func (r Request) TemplateParams() map[string]string {
	return map[string]string{
		"to_name":    ConciergeName,
		"from_name":  r.Name,
		"from_email": r.Email,
		"phone":      r.Phone,
		"date":       r.Date,
		"time":       r.Time,
		"guests":     strconv.Itoa(r.Guests),
		"occasion":   string(r.Occasion),
		"message":    r.Message,
	}
}

// DeepLink builds the wa.me link that opens a chat with phone pre-filled with
// message. Non-digits in phone are dropped. Spaces encode as %20 so any URI
// decoder restores them.
func DeepLink(phone, message string) string {
	link := "https://wa.me/" + normalization.Digits(phone)
	if message == "" {
		return link
	}
	return link + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

func guestsLabel(n int) string {
	if n == 1 {
		return "1 Guest"
	}
	return strconv.Itoa(n) + " Guests"
}
