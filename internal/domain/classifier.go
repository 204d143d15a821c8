package domain

import "strings"

// Phase tells which step of CategorizeExclusive produced a category.
type Phase string

const (
	PhaseCanonical Phase = "canonical"
	PhaseHeuristic Phase = "heuristic"
	PhaseFallback  Phase = "fallback"
)

// Decision is the explained outcome of exclusive categorization.
type Decision struct {
	Category Category `json:"category"`
	Phase    Phase    `json:"phase"`
	// Rule is the waterfall rule name, or the matched label in the canonical
	// phase. Empty on fallback.
	Rule string `json:"rule,omitempty"`
}

// DetectCategory runs the priority waterfall only, ignoring canonical
// device_type labels. A device matching no rule (or nil) is Other.
func DetectCategory(d *Device) Category {
	if r, ok := firstMatch(Normalize(d)); ok {
		return r.Category
	}
	return CategoryOther
}

// CategorizeExclusive assigns d to exactly one category.
//
// A device_type equal to one of the dropdown labels (after trimming, case
// sensitive) is trusted as-is; anything else goes through DetectCategory.
func CategorizeExclusive(d *Device) Category {
	return Explain(d).Category
}

// Explain is CategorizeExclusive with the phase and rule that decided it.
func Explain(d *Device) Decision {
	if d == nil {
		return Decision{Category: CategoryOther, Phase: PhaseFallback}
	}

	label := strings.TrimSpace(d.DeviceType)
	if c, ok := canonicalCategory(label); ok {
		return Decision{Category: c, Phase: PhaseCanonical, Rule: label}
	}

	if r, ok := firstMatch(Normalize(d)); ok {
		return Decision{Category: r.Category, Phase: PhaseHeuristic, Rule: r.Name}
	}
	return Decision{Category: CategoryOther, Phase: PhaseFallback}
}
