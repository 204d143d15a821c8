package inventory

import "errors"

var (
	ErrUnsupportedFormat = errors.New("inventory: unsupported file format")
	ErrNoDevices         = errors.New("inventory: no devices found")
)
