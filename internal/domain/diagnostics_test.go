package domain

import "testing"

func TestClassifyCPU(t *testing.T) {
	tests := []struct {
		cpu  string
		want CPUClass
	}{
		{"Intel Xeon vCPU", CPUClassVM},
		{"Virtual CPU", CPUClassVM},
		{"Intel Xeon Gold 6230", CPUClassServer},
		{"AMD EPYC 7452", CPUClassServer},
		{"Intel Xeon E5-2680 v4", CPUClassServer},
		{"Intel Core i5-8265U", CPUClassLaptop},
		{"Apple M1", CPUClassLaptop},
		{"Intel Core i7-10700", CPUClassDesktop},
		{"Intel Pentium G5400", CPUClassDesktop},
		{"ARM Cortex-A53", CPUClassUnknown},
		{"", CPUClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.cpu, func(t *testing.T) {
			if got := ClassifyCPU(tt.cpu); got != tt.want {
				t.Errorf("ClassifyCPU(%q) = %v, want %v", tt.cpu, got, tt.want)
			}
		})
	}
}

func TestAnalyzeDrift(t *testing.T) {
	devices := []*Device{
		{ID: "a", Hostname: "vm-sql01", CPU: "Intel Xeon Gold 6230"},
		{ID: "b", Hostname: "srv-db01", CPU: "Intel Xeon Gold 6230"},
		{ID: "c", CPU: "Intel Xeon E5-2680", DeviceModel: "OptiPlex 7090"},
		{ID: "d", DeviceModel: "Latitude 5420"},
		nil,
	}

	rep := AnalyzeDrift(devices, 5)

	if rep.Total != 5 {
		t.Errorf("Total = %d, want 5", rep.Total)
	}
	if rep.PhysicalStrict != 2 {
		t.Errorf("PhysicalStrict = %d, want 2", rep.PhysicalStrict)
	}
	if rep.PhysicalNonStrict != 3 {
		t.Errorf("PhysicalNonStrict = %d, want 3", rep.PhysicalNonStrict)
	}
	if rep.Virtual != 1 {
		t.Errorf("Virtual = %d, want 1", rep.Virtual)
	}
	if rep.Difference != 1 {
		t.Errorf("Difference = %d, want 1", rep.Difference)
	}
	if len(rep.NonStrictOnly) != 1 || rep.NonStrictOnly[0].ID != "a" {
		t.Fatalf("NonStrictOnly = %+v, want device a", rep.NonStrictOnly)
	}
	if rep.NonStrictOnly[0].Category != CategoryServerVM {
		t.Errorf("NonStrictOnly[0].Category = %v, want %v", rep.NonStrictOnly[0].Category, CategoryServerVM)
	}
	if rep.NonStrictOnly[0].CPUClass != CPUClassServer {
		t.Errorf("NonStrictOnly[0].CPUClass = %v, want %v", rep.NonStrictOnly[0].CPUClass, CPUClassServer)
	}
	if rep.ServerDesktopOverlap != 1 || len(rep.OverlapSamples) != 1 || rep.OverlapSamples[0].ID != "c" {
		t.Errorf("overlap = %d %+v, want device c", rep.ServerDesktopOverlap, rep.OverlapSamples)
	}
	if !rep.PartitionOK {
		t.Error("PartitionOK should be true")
	}
	if rep.Exclusive.Get(CategoryOther) != 1 {
		t.Errorf("exclusive other = %d, want 1", rep.Exclusive.Get(CategoryOther))
	}
}

func TestAnalyzeDriftSampleLimit(t *testing.T) {
	devices := []*Device{
		{ID: "a", Hostname: "vm-sql01", CPU: "Intel Xeon Gold 6230"},
		{ID: "b", Hostname: "vm-sql02", CPU: "AMD EPYC 7452"},
	}

	rep := AnalyzeDrift(devices, 0)
	if rep.Difference != 2 {
		t.Errorf("Difference = %d, want 2", rep.Difference)
	}
	if rep.NonStrictOnly == nil || len(rep.NonStrictOnly) != 0 {
		t.Errorf("NonStrictOnly = %v, want empty non-nil", rep.NonStrictOnly)
	}

	rep = AnalyzeDrift(devices, 1)
	if len(rep.NonStrictOnly) != 1 {
		t.Errorf("NonStrictOnly has %d samples, want 1", len(rep.NonStrictOnly))
	}
}
