package index

import (
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/devcat/internal/domain"
)

// MemoryIndex holds the current device snapshot. It is the source of truth
// for every HTTP read; Redis only mirrors it.
//
// Stored devices are treated as immutable: writers replace a device instead
// of editing it in place, so readers may keep the pointers they got.
type MemoryIndex struct {
	mu         sync.RWMutex
	devices    map[string]*domain.Device // ID -> Device
	lastReload time.Time                 // Timestamp of last full inventory reload
}

// NewMemoryIndex creates a new memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		devices: make(map[string]*domain.Device),
	}
}

// UpdateDevices replaces the whole snapshot.
func (idx *MemoryIndex) UpdateDevices(devices []*domain.Device) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.devices = make(map[string]*domain.Device, len(devices))
	for _, d := range devices {
		if d == nil || d.ID == "" {
			continue
		}
		idx.devices[d.ID] = d
	}
	idx.lastReload = time.Now()
}

// GetDevice retrieves a device by ID
func (idx *MemoryIndex) GetDevice(id string) (*domain.Device, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	d, ok := idx.devices[id]
	return d, ok
}

// GetAllDevices returns every device, disabled ones included, sorted by ID.
func (idx *MemoryIndex) GetAllDevices() []*domain.Device {
	idx.mu.RLock()
	devices := make([]*domain.Device, 0, len(idx.devices))
	for _, d := range idx.devices {
		devices = append(devices, d)
	}
	idx.mu.RUnlock()

	sortByID(devices)
	return devices
}

// ActiveDevices returns the non-disabled devices, sorted by ID. An empty site
// means all sites.
func (idx *MemoryIndex) ActiveDevices(site string) []*domain.Device {
	idx.mu.RLock()
	devices := make([]*domain.Device, 0, len(idx.devices))
	for _, d := range idx.devices {
		if d.Disabled {
			continue
		}
		if site != "" && d.SiteName != site {
			continue
		}
		devices = append(devices, d)
	}
	idx.mu.RUnlock()

	sortByID(devices)
	return devices
}

// DeleteDevice removes a device from the index
func (idx *MemoryIndex) DeleteDevice(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.devices, id)
}

// Count returns the number of devices in the index, disabled ones included.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.devices)
}

// Sites returns the distinct site names of active devices, sorted.
func (idx *MemoryIndex) Sites() []string {
	idx.mu.RLock()
	seen := make(map[string]struct{})
	for _, d := range idx.devices {
		if d.Disabled || d.SiteName == "" {
			continue
		}
		seen[d.SiteName] = struct{}{}
	}
	idx.mu.RUnlock()

	sites := make([]string, 0, len(seen))
	for s := range seen {
		sites = append(sites, s)
	}
	sort.Strings(sites)
	return sites
}

// GetLastReload returns the timestamp of the last UpdateDevices call.
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

func sortByID(devices []*domain.Device) {
	sort.Slice(devices, func(i, j int) bool { return devices[i].ID < devices[j].ID })
}
