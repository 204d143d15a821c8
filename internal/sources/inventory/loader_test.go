package inventory

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func TestLoaderLoadYAML(t *testing.T) {
	path := writeFile(t, "austin.yaml", `---
devices:
  - id: dev-1
    device_hostname: srv-db01
    device_cpu: Intel Xeon Gold 6230
sites:
  - name: Austin
    devices:
      - device_hostname: aam-ws-001
        device_model: OptiPlex 7090
        mac_addresses: ["00:11:22:33:44:55"]
      - device_hostname: vm-app01
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if file.Len() != 3 {
		t.Fatalf("Load() returned %d records, want 3", file.Len())
	}
	if file.Devices[0].CPU != "Intel Xeon Gold 6230" {
		t.Errorf("device_cpu = %q", file.Devices[0].CPU)
	}
	if file.Sites[0].Name != "Austin" || len(file.Sites[0].Devices[0].MACAddresses) != 1 {
		t.Errorf("site block not parsed: %+v", file.Sites)
	}
}

func TestLoaderLoadYAMLList(t *testing.T) {
	path := writeFile(t, "list.yml", `
- device_hostname: srv-db01
- device_hostname: LIC-0042
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(file.Devices) != 2 || file.Devices[1].Hostname != "LIC-0042" {
		t.Errorf("Load() = %+v", file.Devices)
	}
}

func TestLoaderLoadJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{
			name:    "object",
			content: `{"devices":[{"device_hostname":"srv-db01"}],"sites":[{"name":"Boston","devices":[{"device_type":"Laptops"}]}]}`,
			want:    2,
		},
		{
			name:    "array",
			content: `[{"device_hostname":"srv-db01"},{"device_hostname":"vm-app01"}]`,
			want:    2,
		},
		{
			name:    "empty",
			content: "  ",
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := NewLoader(writeFile(t, "inv.json", tt.content)).Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if file.Len() != tt.want {
				t.Errorf("Load() returned %d records, want %d", file.Len(), tt.want)
			}
		})
	}
}

func TestLoaderLoadCSV(t *testing.T) {
	path := writeFile(t, "export.csv", "\uFEFFHostname,Device Type,Model,CPU,OS,Site,mac_addresses,ignored\n"+
		"srv-db01,Server,PowerEdge R740,Intel Xeon Gold 6230,Windows Server 2019,Austin,aa:bb;cc:dd ;,x\n"+
		"aam-ws-001,,OptiPlex 7090\n"+
		",,,,,,,\n")

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(file.Devices) != 3 {
		t.Fatalf("Load() returned %d rows, want 3", len(file.Devices))
	}

	first := file.Devices[0]
	if first.Hostname != "srv-db01" || first.DeviceType != "Server" || first.DeviceModel != "PowerEdge R740" {
		t.Errorf("first row = %+v", first)
	}
	if first.CPU != "Intel Xeon Gold 6230" || first.OperatingSystem != "Windows Server 2019" || first.SiteName != "Austin" {
		t.Errorf("first row = %+v", first)
	}
	if len(first.MACAddresses) != 2 || first.MACAddresses[1] != "cc:dd" {
		t.Errorf("mac_addresses = %v, want [aa:bb cc:dd]", first.MACAddresses)
	}
	if file.Devices[1].DeviceModel != "OptiPlex 7090" {
		t.Errorf("short row = %+v", file.Devices[1])
	}
	if !file.Devices[2].empty() {
		t.Errorf("blank row should be empty, got %+v", file.Devices[2])
	}
}

func TestLoaderErrors(t *testing.T) {
	t.Run("unsupported format", func(t *testing.T) {
		_, err := NewLoader(writeFile(t, "inv.xlsx", "x")).Load()
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Load() error = %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load()
		if err == nil {
			t.Error("Load() should fail on a missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := NewLoader(writeFile(t, "bad.yaml", "devices: [unclosed")).Load()
		if err == nil {
			t.Error("Load() should fail on invalid YAML")
		}
	})

	t.Run("scalar yaml", func(t *testing.T) {
		_, err := NewLoader(writeFile(t, "scalar.yaml", "just text")).Load()
		if err == nil {
			t.Error("Load() should reject a scalar document")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := NewLoader(writeFile(t, "bad.json", "{")).Load()
		if err == nil {
			t.Error("Load() should fail on invalid JSON")
		}
	})
}

func TestLoaderSource(t *testing.T) {
	l := NewLoader("/data/inventories/austin.yaml")
	if got := l.Source(); got != "file:austin.yaml" {
		t.Errorf("Source() = %q, want %q", got, "file:austin.yaml")
	}
	if l.Path() != "/data/inventories/austin.yaml" {
		t.Errorf("Path() = %q", l.Path())
	}
}
