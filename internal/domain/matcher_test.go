package domain

import "testing"

func TestNormalize(t *testing.T) {
	d := &Device{
		Hostname:        "  ＶＭ-APP01 ",
		DeviceModel:     "PowerEdge R740",
		DeviceType:      " Server ",
		OperatingSystem: "Windows Server 2019",
	}

	f := Normalize(d)
	if !f.Present {
		t.Fatal("Normalize() of a device should be present")
	}
	if f.Hostname != "vm-app01" {
		t.Errorf("Hostname = %q, want %q", f.Hostname, "vm-app01")
	}
	if f.Model != "poweredge r740" {
		t.Errorf("Model = %q, want %q", f.Model, "poweredge r740")
	}
	if f.Type != "server" {
		t.Errorf("Type = %q, want %q", f.Type, "server")
	}
	if f.CPU != "" || f.Vendor != "" {
		t.Errorf("missing fields should normalize to empty, got cpu=%q vendor=%q", f.CPU, f.Vendor)
	}
}

func TestNormalizeNil(t *testing.T) {
	f := Normalize(nil)
	if f.Present {
		t.Error("Normalize(nil) should not be present")
	}
}

func TestMatchers(t *testing.T) {
	f := Fields{
		Present:  true,
		Hostname: "srv-db01",
		Model:    "poweredge r740",
		Type:     "server",
		CPU:      "intel xeon gold 6230",
	}
	empty := Fields{}

	tests := []struct {
		name string
		m    Matcher
		in   Fields
		want bool
	}{
		{"equals hit", Equals(FieldType, "desktop", "server"), f, true},
		{"equals is exact", Equals(FieldType, "serv"), f, false},
		{"contains hit", Contains(FieldCPU, "epyc", "xeon"), f, true},
		{"contains on empty field", Contains(FieldOS, ""), f, false},
		{"prefix hit", HasPrefix(FieldHostname, "srv"), f, true},
		{"prefix miss", HasPrefix(FieldHostname, "db"), f, false},
		{"regex hit", MatchesAny(FieldModel, `r\d{3}`), f, true},
		{"regex miss", MatchesAny(FieldModel, `^r\d{3}`), f, false},
		{"any of", AnyOf(Contains(FieldCPU, "ryzen"), HasPrefix(FieldHostname, "srv")), f, true},
		{"any of none", AnyOf(), f, false},
		{"all of", AllOf(Contains(FieldCPU, "xeon"), HasPrefix(FieldHostname, "srv")), f, true},
		{"all of one miss", AllOf(Contains(FieldCPU, "xeon"), HasPrefix(FieldHostname, "vm")), f, false},
		{"all of none", AllOf(), f, false},
		{"not", Not(Contains(FieldOS, "workstation")), f, true},
		{"not on absent device", Not(Contains(FieldOS, "workstation")), empty, false},
		{"unless no veto", Unless(Contains(FieldCPU, "xeon"), HasPrefix(FieldHostname, "vm")), f, true},
		{"unless vetoed", Unless(Contains(FieldCPU, "xeon"), HasPrefix(FieldHostname, "srv")), f, false},
		{"present guard", present(Not(Contains(FieldOS, "x"))), empty, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m(tt.in); got != tt.want {
				t.Errorf("matcher() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesAnyPanicsOnBadPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MatchesAny() with an invalid pattern should panic when built")
		}
	}()
	MatchesAny(FieldCPU, `(`)
}
