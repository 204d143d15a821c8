package domain

import "time"

// Device is one inventory asset as loaded from a site inventory.
//
// Every descriptive field is optional. Classification only ever reads
// DeviceType, DeviceModel, CPU, OperatingSystem, Hostname and Vendor; the
// category is never stored here and must be recomputed when those change.
type Device struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is the canonical unique identifier inside the inventory.
	ID string `json:"id" yaml:"id"`

	// SiteName is the site the device belongs to.
	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`

	// ─────────────────────────────
	// Description (as entered or imported)
	// ─────────────────────────────

	Hostname        string   `json:"device_hostname,omitempty" yaml:"device_hostname,omitempty"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	LastUser        string   `json:"last_user,omitempty" yaml:"last_user,omitempty"`
	LastSeen        string   `json:"last_seen,omitempty" yaml:"last_seen,omitempty"`
	DeviceType      string   `json:"device_type,omitempty" yaml:"device_type,omitempty"`
	DeviceModel     string   `json:"device_model,omitempty" yaml:"device_model,omitempty"`
	OperatingSystem string   `json:"operating_system,omitempty" yaml:"operating_system,omitempty"`
	SerialNumber    string   `json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	CPU             string   `json:"device_cpu,omitempty" yaml:"device_cpu,omitempty"`
	Vendor          string   `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	MACAddresses    []string `json:"mac_addresses,omitempty" yaml:"mac_addresses,omitempty"`

	// ─────────────────────────────
	// Provenance & liveness
	// ─────────────────────────────

	// Sources indicates where this device was loaded from.
	// Example: file:site-a.yaml
	Sources []string `json:"sources,omitempty" yaml:"-"`

	// CreatedAt is the first time the device was loaded.
	CreatedAt time.Time `json:"created_at,omitempty" yaml:"-"`

	// UpdatedAt is updated on any mutation.
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"-"`

	// Disabled marks a device that vanished from its source file.
	// It is excluded from counts and may be garbage-collected later.
	Disabled bool `json:"disabled,omitempty" yaml:"-"`
}
