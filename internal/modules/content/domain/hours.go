package domain

import (
	"fmt"
	"strings"
	"time"
)

// DayOfWeek is the canonical uppercase english day name used in the catalog.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var weekdays = map[time.Weekday]DayOfWeek{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

var allowedDays = map[string]DayOfWeek{
	string(Monday):    Monday,
	string(Tuesday):   Tuesday,
	string(Wednesday): Wednesday,
	string(Thursday):  Thursday,
	string(Friday):    Friday,
	string(Saturday):  Saturday,
	string(Sunday):    Sunday,
}

const clockLayout = "15:04"

// ParseDay accepts any casing and surrounding spaces.
func ParseDay(raw string) (DayOfWeek, bool) {
	day, ok := allowedDays[strings.ToUpper(strings.TrimSpace(raw))]
	return day, ok
}

// DayOf returns the catalog day for t's weekday.
func DayOf(t time.Time) DayOfWeek { return weekdays[t.Weekday()] }

// ServiceHours is one opening window, e.g. dinner Friday to Saturday 18:00 to
// 00:00. Days form a contiguous run. A close time at or before the open time
// runs past midnight.
type ServiceHours struct {
	Label  string   `yaml:"label" json:"label"`
	Days   []string `yaml:"days" json:"days"`
	Opens  string   `yaml:"opens" json:"opens"`
	Closes string   `yaml:"closes" json:"closes"`
}

// Covers reports whether the window starts on day.
func (h ServiceHours) Covers(day DayOfWeek) bool {
	for _, raw := range h.Days {
		if d, ok := ParseDay(raw); ok && d == day {
			return true
		}
	}
	return false
}

// OpenAt reports whether t falls inside the window. Windows that cross
// midnight are attributed to the day they open on.
func (h ServiceHours) OpenAt(t time.Time) bool {
	opens, closes, err := h.clock()
	if err != nil {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	if closes > opens {
		return h.Covers(DayOf(t)) && minute >= opens && minute < closes
	}
	if h.Covers(DayOf(t)) && minute >= opens {
		return true
	}
	return h.Covers(DayOf(t.AddDate(0, 0, -1))) && minute < closes
}

// Summary renders the window the way the contact card shows it.
func (h ServiceHours) Summary() string {
	days := make([]string, 0, len(h.Days))
	for _, raw := range h.Days {
		if d, ok := ParseDay(raw); ok {
			days = append(days, d.Title())
		}
	}
	span := strings.Join(days, "")
	if len(days) > 1 {
		span = days[0] + " - " + days[len(days)-1]
	}
	return fmt.Sprintf("%s: %s - %s", span, formatClock(h.Opens), formatClock(h.Closes))
}

// Title returns "Monday" for MONDAY.
func (d DayOfWeek) Title() string {
	s := string(d)
	if s == "" {
		return ""
	}
	return s[:1] + strings.ToLower(s[1:])
}

func (h ServiceHours) clock() (int, int, error) {
	opens, err := time.Parse(clockLayout, h.Opens)
	if err != nil {
		return 0, 0, fmt.Errorf("opens %q: %w", h.Opens, err)
	}
	closes, err := time.Parse(clockLayout, h.Closes)
	if err != nil {
		return 0, 0, fmt.Errorf("closes %q: %w", h.Closes, err)
	}
	return opens.Hour()*60 + opens.Minute(), closes.Hour()*60 + closes.Minute(), nil
}

func (h ServiceHours) validate() error {
	if len(h.Days) == 0 {
		return fmt.Errorf("hours %q list no days", h.Label)
	}
	for _, raw := range h.Days {
		if _, ok := ParseDay(raw); !ok {
			return fmt.Errorf("hours %q has unknown day %q", h.Label, raw)
		}
	}
	if _, _, err := h.clock(); err != nil {
		return fmt.Errorf("hours %q: %w", h.Label, err)
	}
	return nil
}

// formatClock turns 18:00 into 6PM and 22:30 into 10:30PM.
func formatClock(raw string) string {
	t, err := time.Parse(clockLayout, raw)
	if err != nil {
		return raw
	}
	if t.Minute() == 0 {
		return t.Format("3PM")
	}
	return t.Format("3:04PM")
}
