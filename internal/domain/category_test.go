package domain

import "testing"

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories() {
		got, ok := ParseCategory(string(c))
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c, got, ok)
		}
	}
	if _, ok := ParseCategory("Server - VM"); ok {
		t.Error("ParseCategory() should reject display names")
	}
	if _, ok := ParseCategory("server-vm"); ok {
		t.Error("ParseCategory() should be case sensitive")
	}
}

func TestDisplayName(t *testing.T) {
	if got := CategoryLaptop.DisplayName(); got != "Laptops" {
		t.Errorf("DisplayName() = %q, want %q", got, "Laptops")
	}
	if got := Category("Printer").DisplayName(); got != "Printer" {
		t.Errorf("DisplayName() of unknown = %q, want raw key", got)
	}
}

func TestAllCategoriesReturnsCopy(t *testing.T) {
	all := AllCategories()
	if len(all) != 8 || all[0] != CategoryServerPhysical || all[7] != CategoryOther {
		t.Fatalf("AllCategories() = %v", all)
	}
	all[0] = CategoryOther
	if AllCategories()[0] != CategoryServerPhysical {
		t.Error("AllCategories() should return a copy")
	}
}
