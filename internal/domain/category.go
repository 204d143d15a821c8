package domain

// Category is one of the eight business buckets a device is counted in.
type Category string

const (
	CategoryServerPhysical   Category = "Server-Physical"
	CategoryServerVM         Category = "Server-VM"
	CategoryCellPhoneATT     Category = "Cell-phones-ATT"
	CategoryCellPhoneVerizon Category = "Cell-phones-Verizon"
	CategoryDLALIONLicense   Category = "DLALION-License"
	CategoryDesktop          Category = "Desktop"
	CategoryLaptop           Category = "Laptop"
	CategoryOther            Category = "Other"
)

// categoryOrder is the tab order used by the registry and every report.
var categoryOrder = []Category{
	CategoryServerPhysical,
	CategoryServerVM,
	CategoryCellPhoneATT,
	CategoryCellPhoneVerizon,
	CategoryDLALIONLicense,
	CategoryDesktop,
	CategoryLaptop,
	CategoryOther,
}

// displayNames doubles as the list of canonical device_type values produced
// by the data-entry form dropdown.
var displayNames = map[Category]string{
	CategoryServerPhysical:   "Server - Physical",
	CategoryServerVM:         "Server - VM",
	CategoryCellPhoneATT:     "Cell Phones - ATT",
	CategoryCellPhoneVerizon: "Cell Phones - Verizon",
	CategoryDLALIONLicense:   "DLALION - License",
	CategoryDesktop:          "Desktop Computers",
	CategoryLaptop:           "Laptops",
	CategoryOther:            "Other Devices",
}

var canonicalTypes = func() map[string]Category {
	m := make(map[string]Category, len(displayNames))
	for c, label := range displayNames {
		m[label] = c
	}
	return m
}()

// AllCategories returns the eight categories in tab order.
func AllCategories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// DisplayName returns the human-readable label of c, or the raw key for an
// unknown category.
func (c Category) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// Valid reports whether c is one of the eight known keys.
func (c Category) Valid() bool {
	_, ok := displayNames[c]
	return ok
}

// ParseCategory accepts a category key ("Server-VM") and returns it typed.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}

// canonicalCategory resolves an exact dropdown label. The comparison is
// case-sensitive; only surrounding whitespace is ignored by the caller.
func canonicalCategory(deviceType string) (Category, bool) {
	c, ok := canonicalTypes[deviceType]
	return c, ok
}
