package utils

import (
	"net/http/httptest"
	"testing"
)

func TestIPMatcher(t *testing.T) {
	m, invalid := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.4 ", "", "not-an-ip", "::1"})
	if len(invalid) != 1 || invalid[0] != "not-an-ip" {
		t.Errorf("invalid = %v, want [not-an-ip]", invalid)
	}
	if m.IsEmpty() {
		t.Fatal("matcher should not be empty")
	}

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"192.168.1.4", true},
		{"192.168.1.5", false},
		{"::1", true},
		{"::ffff:10.0.0.1", true},
		{"garbage", false},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := m.Allow(tt.ip); got != tt.want {
				t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}

	empty, _ := NewIPMatcher(nil)
	if !empty.IsEmpty() {
		t.Error("NewIPMatcher(nil) should be empty")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		xff        string
		realIP     string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", remote: "1.2.3.4:5555", want: "1.2.3.4"},
		{name: "xff ignored without trust", remote: "1.2.3.4:5555", xff: "9.9.9.9", want: "1.2.3.4"},
		{name: "xff first hop", remote: "1.2.3.4:5555", xff: "9.9.9.9, 8.8.8.8", trustProxy: true, want: "9.9.9.9"},
		{name: "real ip fallback", remote: "1.2.3.4:5555", realIP: "7.7.7.7", trustProxy: true, want: "7.7.7.7"},
		{name: "ipv6 remote", remote: "[::1]:8080", want: "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
