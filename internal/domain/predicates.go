package domain

// ─────────────────────────────────────────────────────────────────
// Rule building blocks
// ─────────────────────────────────────────────────────────────────

// vmIndicators is the single set of virtualization signals. It is both the
// Server-VM rule and the veto applied to the strict physical-server rule.
var vmIndicators = present(AnyOf(
	Equals(FieldType, "server-vm", "virtual machine"),
	HasPrefix(FieldHostname, "vm", "aamdt"),
	Contains(FieldHostname, "virtual"),
	Contains(FieldModel, "vmware", "virtual"),
	Contains(FieldCPU, "virtual", "vcpu", "vmware"),
	Contains(FieldOS, "hypervisor", "esxi"),
))

var serverCPUPatterns = []string{
	`xeon`, `epyc`, `opteron`, `e5-\d`, `e7-\d`,
	`gold`, `silver`, `platinum`, `\d{4}v\d`,
}

var serverModelPatterns = []string{
	`poweredge`, `proliant`, `system x`, `thinkserver`,
	`blade`, `rack`, `r\d{3}`,
}

// physicalServerSignals are the positive physical-server heuristics, shared by
// the strict and non-strict variants.
var physicalServerSignals = present(AnyOf(
	Equals(FieldType, "server-physical", "server"),
	HasPrefix(FieldHostname, "srv"),
	MatchesAny(FieldCPU, serverCPUPatterns...),
	MatchesAny(FieldModel, serverModelPatterns...),
	AllOf(
		Contains(FieldOS, "server", "enterprise"),
		Not(Contains(FieldOS, "workstation")),
	),
))

var serverPhysicalStrict = Unless(physicalServerSignals, vmIndicators)

// carrierPhone builds the rule shared by both carriers: the canonical type,
// a phone-typed device mentioning a carrier alias, or a phone hostname
// mentioning one.
func carrierPhone(canonical string, aliases ...string) Matcher {
	return present(AnyOf(
		Equals(FieldType, canonical),
		AllOf(
			Contains(FieldType, "phone"),
			AnyOf(
				Contains(FieldVendor, aliases...),
				Contains(FieldHostname, aliases...),
				Contains(FieldModel, aliases...),
			),
		),
		AllOf(
			Contains(FieldHostname, "phone"),
			Contains(FieldHostname, aliases...),
		),
	))
}

var cellPhoneATT = carrierPhone("cell-phones-att", "att")

var cellPhoneVerizon = carrierPhone("cell-phones-verizon", "verizon", "vzw")

var dlalionLicense = present(AnyOf(
	Equals(FieldType, "dlalion-license"),
	Contains(FieldHostname, "lic", "license", "dlalion"),
	Contains(FieldType, "license"),
))

var laptop = present(AnyOf(
	Contains(FieldType, "laptop", "notebook"),
	Contains(FieldModel, "thinkpad", "latitude", "probook", "macbook", "elitebook", "xps"),
	Contains(FieldHostname, "laptop", "note"),
))

var desktopCPUPatterns = []string{
	`i\d-\d`, `core i\d`, `pentium`, `celeron`, `ryzen \d`, `athlon`,
}

// desktop defers to laptop on the CPU heuristic (consumer CPUs ship in both)
// and to vmIndicators on the "aam" hostname convention, whose "aamdt" form
// names virtual desktops.
var desktop = present(AnyOf(
	Contains(FieldType, "desktop", "sff", "tower"),
	Equals(FieldType, "all-in-one"),
	Contains(FieldModel, "optiplex", "thinkcentre", "prodesk", "elitedesk"),
	AllOf(
		MatchesAny(FieldCPU, desktopCPUPatterns...),
		Not(laptop),
	),
	AllOf(
		Contains(FieldHostname, "aam"),
		Not(Contains(FieldHostname, "dt")),
		Not(vmIndicators),
	),
))

// ─────────────────────────────────────────────────────────────────
// Predicate library
// ─────────────────────────────────────────────────────────────────

// IsServerVM reports whether d carries any virtualization indicator.
func IsServerVM(d *Device) bool { return vmIndicators(Normalize(d)) }

// IsServerPhysicalStrict reports whether d looks like a physical server and
// carries no virtualization indicator. This is the variant used for
// classification.
func IsServerPhysicalStrict(d *Device) bool { return serverPhysicalStrict(Normalize(d)) }

// IsServerPhysical is the loose physical-server check: the same positive
// heuristics as IsServerPhysicalStrict without the VM veto. It is kept for
// drift diagnostics and never drives classification.
func IsServerPhysical(d *Device) bool { return physicalServerSignals(Normalize(d)) }

// IsCellPhoneATT reports whether d is an AT&T phone line.
func IsCellPhoneATT(d *Device) bool { return cellPhoneATT(Normalize(d)) }

// IsCellPhoneVerizon reports whether d is a Verizon phone line.
func IsCellPhoneVerizon(d *Device) bool { return cellPhoneVerizon(Normalize(d)) }

// IsDLALIONLicense reports whether d is a DLALION license seat.
func IsDLALIONLicense(d *Device) bool { return dlalionLicense(Normalize(d)) }

// IsDesktop reports whether d is a desktop computer.
func IsDesktop(d *Device) bool { return desktop(Normalize(d)) }

// IsLaptop reports whether d is a laptop.
func IsLaptop(d *Device) bool { return laptop(Normalize(d)) }
