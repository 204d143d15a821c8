package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrSnakeDoc/devcat/internal/logger"
)

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"devcat.example.com", "devcat.example.com", true},
		{"a.example.com", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"devcat.example.org", "*.example.com", false},
		{"other.example.com", "devcat.example.com", false},
		{".example.com", "*.example.com", false},
	}
	for _, tt := range tests {
		if got := matchHost(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"devcat.local"}, logger.NewNop())(okHandler)

	req := httptest.NewRequest(http.MethodGet, "http://devcat.local/api/categories", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("allowed host: status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "http://DevCat.Local:8080/api/categories", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("host with port and capitals: status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "http://evil.local/api/categories", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("other host: status = %d, want 403", rec.Code)
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		remoteAddr string
		xff        string
		trustProxy bool
		want       int
	}{
		{"empty list passes through", nil, "203.0.113.9:1", "", false, http.StatusOK},
		{"inside cidr", []string{"10.0.0.0/8"}, "10.1.2.3:1", "", false, http.StatusOK},
		{"outside cidr", []string{"10.0.0.0/8"}, "203.0.113.9:1", "", false, http.StatusForbidden},
		{"single ip", []string{"192.168.1.4"}, "192.168.1.4:1", "", false, http.StatusOK},
		{"invalid entries ignored", []string{"nope", "10.0.0.0/8"}, "10.0.0.1:1", "", false, http.StatusOK},
		{"xff ignored without proxy", []string{"10.0.0.0/8"}, "203.0.113.9:1", "10.0.0.1", false, http.StatusForbidden},
		{"xff trusted behind proxy", []string{"10.0.0.0/8"}, "203.0.113.9:1", "10.0.0.1", true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AllowOnlyCIDRS(tt.allowed, tt.trustProxy, logger.NewNop())(okHandler)
			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
