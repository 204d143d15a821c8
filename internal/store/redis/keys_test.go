package redis

import "testing"

func TestDeviceKeys(t *testing.T) {
	if got := DeviceKey("abc"); got != "devcat:device:abc" {
		t.Errorf("DeviceKey() = %q", got)
	}
	if got := AllDevicesKey(); got != "devcat:devices:all" {
		t.Errorf("AllDevicesKey() = %q", got)
	}
}
