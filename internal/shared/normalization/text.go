package normalization

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips combining marks so "Purée" and "puree" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// ContainsFolded reports whether needle occurs in any of haystacks after folding.
// An empty needle matches everything.
func ContainsFolded(needle string, haystacks ...string) bool {
	needle = Fold(needle)
	if needle == "" {
		return true
	}
	for _, h := range haystacks {
		if strings.Contains(Fold(h), needle) {
			return true
		}
	}
	return false
}
