package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fields holds the lowercased, trimmed views of the attributes the rules read.
// A zero Fields (Present == false) stands for a nil device and matches nothing.
type Fields struct {
	Present  bool
	Hostname string
	Model    string
	Type     string
	CPU      string
	OS       string
	Vendor   string
}

// Field selects one attribute of Fields.
type Field int

const (
	FieldHostname Field = iota
	FieldModel
	FieldType
	FieldCPU
	FieldOS
	FieldVendor
)

func (f Field) String() string {
	switch f {
	case FieldHostname:
		return "hostname"
	case FieldModel:
		return "model"
	case FieldType:
		return "device_type"
	case FieldCPU:
		return "cpu"
	case FieldOS:
		return "os"
	case FieldVendor:
		return "vendor"
	default:
		return "unknown"
	}
}

// Get returns the normalized value of field f.
func (fs Fields) Get(f Field) string {
	switch f {
	case FieldHostname:
		return fs.Hostname
	case FieldModel:
		return fs.Model
	case FieldType:
		return fs.Type
	case FieldCPU:
		return fs.CPU
	case FieldOS:
		return fs.OS
	case FieldVendor:
		return fs.Vendor
	default:
		return ""
	}
}

// Normalize builds the matching view of d. It never panics; a nil device
// yields an empty, non-present Fields.
func Normalize(d *Device) Fields {
	if d == nil {
		return Fields{}
	}
	return Fields{
		Present:  true,
		Hostname: normalizeValue(d.Hostname),
		Model:    normalizeValue(d.DeviceModel),
		Type:     normalizeValue(d.DeviceType),
		CPU:      normalizeValue(d.CPU),
		OS:       normalizeValue(d.OperatingSystem),
		Vendor:   normalizeValue(d.Vendor),
	}
}

// normalizeValue folds compatibility forms (fullwidth letters, ligatures,
// non-breaking spaces) before lowercasing so imported spreadsheets match the
// same rules as form-entered data.
func normalizeValue(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}
