package domain

// Rule is one step of the classification waterfall.
type Rule struct {
	// Name identifies the rule in explanations and logs.
	Name string

	// Category is returned when Match succeeds.
	Category Category

	// Match is evaluated against the normalized device fields.
	Match Matcher
}

// waterfall is the precedence order of the heuristic phase. VM runs first so
// that virtual servers are never counted as hardware; Laptop runs before
// Desktop because their CPU signals overlap.
var waterfall = []Rule{
	{Name: "server-vm", Category: CategoryServerVM, Match: vmIndicators},
	{Name: "server-physical-strict", Category: CategoryServerPhysical, Match: serverPhysicalStrict},
	{Name: "cell-phone-att", Category: CategoryCellPhoneATT, Match: cellPhoneATT},
	{Name: "cell-phone-verizon", Category: CategoryCellPhoneVerizon, Match: cellPhoneVerizon},
	{Name: "dlalion-license", Category: CategoryDLALIONLicense, Match: dlalionLicense},
	{Name: "laptop", Category: CategoryLaptop, Match: laptop},
	{Name: "desktop", Category: CategoryDesktop, Match: desktop},
}

// Rules returns a copy of the heuristic rules in precedence order.
func Rules() []Rule {
	out := make([]Rule, len(waterfall))
	copy(out, waterfall)
	return out
}

// firstMatch walks the waterfall and returns the first rule matching f.
func firstMatch(f Fields) (Rule, bool) {
	if !f.Present {
		return Rule{}, false
	}
	for _, r := range waterfall {
		if r.Match(f) {
			return r, true
		}
	}
	return Rule{}, false
}
