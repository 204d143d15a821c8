package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/devcat/internal/domain"
	"github.com/google/uuid"
)

// deviceNamespace seeds the name-based UUIDs of records without an id.
var deviceNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("devcat.device"))

// Mapper converts inventory records to domain.Device entities
type Mapper struct {
	now func() time.Time
}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{now: time.Now}
}

// MapDevices converts a parsed file into devices tagged with source.
// Blank records are skipped; a file with no usable record yields ErrNoDevices.
func (m *Mapper) MapDevices(file *File, source string) ([]*domain.Device, error) {
	if file == nil {
		return nil, fmt.Errorf("%w in %s", ErrNoDevices, source)
	}

	now := m.now()
	devices := make([]*domain.Device, 0, file.Len())
	row := 0
	derived := make(map[string]bool)

	add := func(rec Record, site string) {
		row++
		if rec.empty() {
			return
		}
		d := toDevice(rec, site)
		d.ID = deviceID(rec, d.SiteName, source, row)
		// Rows the attributes cannot tell apart (several "iPhone" lines) stay
		// distinct devices; the first one keeps the attribute-only id.
		if strings.TrimSpace(rec.ID) == "" {
			if derived[d.ID] {
				d.ID = rowScopedID(d.ID, source, row)
			}
			derived[d.ID] = true
		}
		d.Sources = []string{source}
		d.CreatedAt = now
		d.UpdatedAt = now
		devices = append(devices, d)
	}

	for _, rec := range file.Devices {
		add(rec, "")
	}
	for _, s := range file.Sites {
		for _, rec := range s.Devices {
			add(rec, strings.TrimSpace(s.Name))
		}
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDevices, source)
	}
	return devices, nil
}

// toDevice copies a record; a site block name wins over the record's own
// site_name only when the record leaves it empty.
func toDevice(rec Record, site string) *domain.Device {
	siteName := strings.TrimSpace(rec.SiteName)
	if siteName == "" {
		siteName = site
	}
	return &domain.Device{
		SiteName:        siteName,
		Hostname:        strings.TrimSpace(rec.Hostname),
		Description:     rec.Description,
		LastUser:        rec.LastUser,
		LastSeen:        rec.LastSeen,
		DeviceType:      rec.DeviceType,
		DeviceModel:     rec.DeviceModel,
		OperatingSystem: rec.OperatingSystem,
		SerialNumber:    strings.TrimSpace(rec.SerialNumber),
		CPU:             rec.CPU,
		Vendor:          rec.Vendor,
		MACAddresses:    rec.MACAddresses,
	}
}

// deviceID keeps an explicit id, otherwise derives a stable one from the
// identifying attributes so reloads keep the same key. Records with none of
// them fall back to their position in the file.
func deviceID(rec Record, site, source string, row int) string {
	if id := strings.TrimSpace(rec.ID); id != "" {
		return id
	}

	serial := strings.ToLower(strings.TrimSpace(rec.SerialNumber))
	host := strings.ToLower(strings.TrimSpace(rec.Hostname))
	macs := strings.ToLower(strings.Join(rec.MACAddresses, ","))
	if serial == "" && host == "" && macs == "" {
		return fmt.Sprintf("%s#%d", source, row)
	}

	name := strings.Join([]string{strings.ToLower(site), serial, host, macs}, "|")
	return uuid.NewSHA1(deviceNamespace, []byte(name)).String()
}

// rowScopedID derives a new id from base plus the file and row position.
func rowScopedID(base, source string, row int) string {
	name := fmt.Sprintf("%s|%s|%d", base, source, row)
	return uuid.NewSHA1(deviceNamespace, []byte(name)).String()
}
