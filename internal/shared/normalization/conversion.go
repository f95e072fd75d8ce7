package normalization

import "strings"

// Digits keeps only ASCII digits, e.g. "+971 50-123" becomes "97150123".
func Digits(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Key lowercases and trims an enumerated value coming from user input.
func Key(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
