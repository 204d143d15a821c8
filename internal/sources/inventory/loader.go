package inventory

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrSnakeDoc/devcat/internal/utils"
	"gopkg.in/yaml.v3"
)

// Loader reads one inventory file. The format follows the extension:
// .yaml/.yml, .json or .csv.
type Loader struct {
	filePath string
}

// NewLoader creates a new inventory loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file this loader reads.
func (l *Loader) Path() string { return l.filePath }

// Source is the provenance tag stamped on devices from this file.
func (l *Loader) Source() string { return "file:" + filepath.Base(l.filePath) }

// Load reads and parses the inventory file
func (l *Loader) Load() (*File, error) {
	switch ext := strings.ToLower(filepath.Ext(l.filePath)); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(l.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read inventory file: %w", err)
		}
		return decodeYAML(data)
	case ".json":
		data, err := os.ReadFile(l.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read inventory file: %w", err)
		}
		return decodeJSON(data)
	case ".csv":
		f, err := os.Open(l.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read inventory file: %w", err)
		}
		defer utils.Close(f)
		return decodeCSV(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// decodeYAML accepts either a File mapping or a bare list of records.
func decodeYAML(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse inventory yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return &File{}, nil
	}

	root := doc.Content[0]
	var out File
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&out.Devices); err != nil {
			return nil, fmt.Errorf("failed to parse inventory yaml: %w", err)
		}
	case yaml.MappingNode:
		if err := root.Decode(&out); err != nil {
			return nil, fmt.Errorf("failed to parse inventory yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to parse inventory yaml: unexpected top-level %s", nodeKind(root.Kind))
	}
	return &out, nil
}

func nodeKind(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "node"
	}
}

// decodeJSON accepts either a File object or a bare array of records.
func decodeJSON(data []byte) (*File, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &File{}, nil
	}

	var out File
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &out.Devices); err != nil {
			return nil, fmt.Errorf("failed to parse inventory json: %w", err)
		}
		return &out, nil
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("failed to parse inventory json: %w", err)
	}
	return &out, nil
}

// csvAliases maps the spreadsheet column names seen in exports to the
// canonical record field names.
var csvAliases = map[string]string{
	"hostname":  "device_hostname",
	"host":      "device_hostname",
	"type":      "device_type",
	"model":     "device_model",
	"cpu":       "device_cpu",
	"os":        "operating_system",
	"serial":    "serial_number",
	"site":      "site_name",
	"mac":       "mac_addresses",
	"user":      "last_user",
	"last_used": "last_seen",
}

func csvColumn(header string) string {
	h := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
	h = strings.Join(strings.Fields(h), "_")
	if alias, ok := csvAliases[h]; ok {
		return alias
	}
	return h
}

// decodeCSV reads a header row followed by one device per row. Unknown
// columns are ignored; mac_addresses holds ';'-separated values.
func decodeCSV(r io.Reader) (*File, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse inventory csv header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = csvColumn(h)
	}

	var out File
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse inventory csv: %w", err)
		}

		var rec Record
		for i, value := range row {
			if i >= len(columns) {
				break
			}
			setField(&rec, columns[i], strings.TrimSpace(value))
		}
		out.Devices = append(out.Devices, rec)
	}
	return &out, nil
}

func setField(rec *Record, column, value string) {
	switch column {
	case "id":
		rec.ID = value
	case "site_name":
		rec.SiteName = value
	case "device_hostname":
		rec.Hostname = value
	case "description":
		rec.Description = value
	case "last_user":
		rec.LastUser = value
	case "last_seen":
		rec.LastSeen = value
	case "device_type":
		rec.DeviceType = value
	case "device_model":
		rec.DeviceModel = value
	case "operating_system":
		rec.OperatingSystem = value
	case "serial_number":
		rec.SerialNumber = value
	case "device_cpu":
		rec.CPU = value
	case "vendor":
		rec.Vendor = value
	case "mac_addresses":
		for _, mac := range strings.Split(value, ";") {
			if mac = strings.TrimSpace(mac); mac != "" {
				rec.MACAddresses = append(rec.MACAddresses, mac)
			}
		}
	}
}
