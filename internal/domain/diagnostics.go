package domain

import "regexp"

// ─────────────────────────────────────────────────────────────────
// CPU family hints
// ─────────────────────────────────────────────────────────────────

// CPUClass is a coarse guess of the machine family from its CPU string alone.
type CPUClass string

const (
	CPUClassVM      CPUClass = "VM"
	CPUClassServer  CPUClass = "Server"
	CPUClassLaptop  CPUClass = "Laptop"
	CPUClassDesktop CPUClass = "Desktop"
	CPUClassUnknown CPUClass = "Unknown"
)

type cpuFamily struct {
	class    CPUClass
	patterns []*regexp.Regexp
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// cpuFamilies is checked in order. Laptop precedes Desktop so the desktop
// patterns need not exclude mobile suffixes (u, q, m, y).
var cpuFamilies = []cpuFamily{
	{CPUClassVM, compileAll(`virtual`, `vm`, `vcpu`, `hypervisor`)},
	{CPUClassServer, compileAll(
		`xeon`, `epyc`, `opteron`, `e5-\d`, `e7-\d`,
		`gold \d{4}`, `silver \d{4}`, `platinum \d{4}`, `\d{4}v\d`,
		`itanium`, `power\d`,
	)},
	{CPUClassLaptop, compileAll(
		`i\d-\d{4,5}[uqmy]`, `\d{4}u`, `mobile`,
		`ryzen \d \d{3}[0-9u]`, `\bm[12]\b`,
	)},
	{CPUClassDesktop, compileAll(
		`i\d-\d{4,5}`, `ryzen \d`, `fx-\d{4}`,
		`athlon`, `pentium`, `celeron`,
	)},
}

// ClassifyCPU guesses the machine family from a CPU model string. It is a
// diagnostic hint shown next to drift samples and never feeds CategorizeExclusive.
func ClassifyCPU(cpu string) CPUClass {
	v := normalizeValue(cpu)
	if v == "" {
		return CPUClassUnknown
	}
	for _, fam := range cpuFamilies {
		for _, re := range fam.patterns {
			if re.MatchString(v) {
				return fam.class
			}
		}
	}
	return CPUClassUnknown
}

// ─────────────────────────────────────────────────────────────────
// Strict vs non-strict drift
// ─────────────────────────────────────────────────────────────────

// Sample is a compact view of a device quoted in a DriftReport.
type Sample struct {
	ID        string   `json:"id,omitempty"`
	Hostname  string   `json:"hostname,omitempty"`
	Type      string   `json:"device_type,omitempty"`
	Model     string   `json:"device_model,omitempty"`
	CPU       string   `json:"cpu,omitempty"`
	OS        string   `json:"os,omitempty"`
	CPUClass  CPUClass `json:"cpu_class"`
	Category  Category `json:"category"`
	Rationale string   `json:"rule,omitempty"`
}

func sampleOf(d *Device) Sample {
	dec := Explain(d)
	return Sample{
		ID:        d.ID,
		Hostname:  d.Hostname,
		Type:      d.DeviceType,
		Model:     d.DeviceModel,
		CPU:       d.CPU,
		OS:        d.OperatingSystem,
		CPUClass:  ClassifyCPU(d.CPU),
		Category:  dec.Category,
		Rationale: dec.Rule,
	}
}

// DriftReport compares the exclusive and overlapping views of a device set
// and the strict and non-strict physical-server rules.
type DriftReport struct {
	Total       int    `json:"total"`
	Exclusive   Counts `json:"exclusive"`
	Overlapping Counts `json:"overlapping"`

	PhysicalStrict    int `json:"physical_strict"`
	PhysicalNonStrict int `json:"physical_non_strict"`
	Virtual           int `json:"virtual"`
	// Difference is PhysicalNonStrict - PhysicalStrict: devices the loose
	// rule would count as hardware despite a VM indicator.
	Difference    int      `json:"difference"`
	NonStrictOnly []Sample `json:"non_strict_only"`

	// ServerDesktopOverlap counts devices matching both the strict
	// physical-server and the desktop predicates.
	ServerDesktopOverlap int      `json:"server_desktop_overlap"`
	OverlapSamples       []Sample `json:"overlap_samples"`

	PartitionOK bool `json:"partition_ok"`
}

// AnalyzeDrift builds a DriftReport over devices, quoting at most samples
// devices per list. Nil entries are counted as Other and never quoted.
func AnalyzeDrift(devices []*Device, samples int) DriftReport {
	if samples < 0 {
		samples = 0
	}
	rep := DriftReport{
		Total:          len(devices),
		Exclusive:      Count(devices, ModeExclusive),
		Overlapping:    Count(devices, ModeOverlapping),
		NonStrictOnly:  []Sample{},
		OverlapSamples: []Sample{},
	}

	for _, d := range devices {
		if d == nil {
			continue
		}
		strict := IsServerPhysicalStrict(d)
		loose := IsServerPhysical(d)
		if strict {
			rep.PhysicalStrict++
		}
		if loose {
			rep.PhysicalNonStrict++
		}
		if IsServerVM(d) {
			rep.Virtual++
		}
		if loose && !strict && len(rep.NonStrictOnly) < samples {
			rep.NonStrictOnly = append(rep.NonStrictOnly, sampleOf(d))
		}
		if strict && IsDesktop(d) {
			rep.ServerDesktopOverlap++
			if len(rep.OverlapSamples) < samples {
				rep.OverlapSamples = append(rep.OverlapSamples, sampleOf(d))
			}
		}
	}

	rep.Difference = rep.PhysicalNonStrict - rep.PhysicalStrict
	rep.PartitionOK = rep.Exclusive.PartitionOK()
	return rep
}
