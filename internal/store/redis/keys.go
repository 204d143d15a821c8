package redis

const (
	// KeyPrefixDevice is the prefix for device keys
	KeyPrefixDevice = "devcat:device:"
	// KeyAllDevices is the key for the set of all device IDs
	KeyAllDevices = "devcat:devices:all"
)

// DeviceKey returns the Redis key for a device by ID
func DeviceKey(id string) string {
	return KeyPrefixDevice + id
}

// AllDevicesKey returns the key for the set of all device IDs
func AllDevicesKey() string {
	return KeyAllDevices
}
