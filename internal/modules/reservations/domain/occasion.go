package domain

import "strings"

// Occasion is the optional reason for the visit chosen in the reservation form.
type Occasion string

const (
	OccasionNone        Occasion = ""
	OccasionAnniversary Occasion = "anniversary"
	OccasionBirthday    Occasion = "birthday"
	OccasionBusiness    Occasion = "business"
	OccasionCelebration Occasion = "celebration"
	OccasionProposal    Occasion = "proposal"
)

// Occasions lists the selectable occasions in form order.
var Occasions = []Occasion{
	OccasionAnniversary,
	OccasionBirthday,
	OccasionBusiness,
	OccasionCelebration,
	OccasionProposal,
}

var occasionLabels = map[Occasion]string{
	OccasionAnniversary: "Anniversary",
	OccasionBirthday:    "Birthday",
	OccasionBusiness:    "Business Dinner",
	OccasionCelebration: "Celebration",
	OccasionProposal:    "Proposal",
}

// Label is the option caption shown in the select.
func (o Occasion) Label() string {
	if label, ok := occasionLabels[o]; ok {
		return label
	}
	return "Select an occasion"
}

// ParseOccasion returns the canonical occasion for raw. Anything outside the
// closed set is reported as not ok and maps to OccasionNone.
func ParseOccasion(raw string) (Occasion, bool) {
	trimmed := Occasion(strings.ToLower(strings.TrimSpace(raw)))
	if trimmed == OccasionNone {
		return OccasionNone, true
	}
	if _, ok := occasionLabels[trimmed]; ok {
		return trimmed, true
	}
	return OccasionNone, false
}
