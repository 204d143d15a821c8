package index

import (
	"fmt"
	"sync"
	"testing"

	"github.com/MrSnakeDoc/devcat/internal/domain"
)

func TestNewMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()
	if index == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if n := len(index.GetAllDevices()); n != 0 {
		t.Errorf("NewMemoryIndex() should start empty, got %v devices", n)
	}
	if !index.GetLastReload().IsZero() {
		t.Error("GetLastReload() should be zero before the first update")
	}
}

func TestUpdateDevicesOverwrites(t *testing.T) {
	index := NewMemoryIndex()

	index.UpdateDevices([]*domain.Device{
		{ID: "dev-1", Hostname: "srv-db01"},
	})
	index.UpdateDevices([]*domain.Device{
		{ID: "dev-2", Hostname: "aam-ws-001"},
		{ID: "dev-3", Hostname: "vm-app01"},
		nil,
		{Hostname: "no-id"},
	})

	if got := index.Count(); got != 2 {
		t.Errorf("UpdateDevices() should overwrite and skip invalid entries, got %v devices want 2", got)
	}
	if _, ok := index.GetDevice("dev-1"); ok {
		t.Error("dev-1 should be gone after overwrite")
	}
	if index.GetLastReload().IsZero() {
		t.Error("UpdateDevices() should set the reload timestamp")
	}
}

func TestGetAllDevicesSorted(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateDevices([]*domain.Device{
		{ID: "c"}, {ID: "a"}, {ID: "b", Disabled: true},
	})

	all := index.GetAllDevices()
	if len(all) != 3 {
		t.Fatalf("GetAllDevices() = %d devices, want 3", len(all))
	}
	for i, want := range []string{"a", "b", "c"} {
		if all[i].ID != want {
			t.Errorf("GetAllDevices()[%d] = %s, want %s", i, all[i].ID, want)
		}
	}
}

func TestActiveDevices(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateDevices([]*domain.Device{
		{ID: "a1", SiteName: "Austin"},
		{ID: "a2", SiteName: "Austin", Disabled: true},
		{ID: "b1", SiteName: "Boston"},
	})

	tests := []struct {
		site string
		want []string
	}{
		{"", []string{"a1", "b1"}},
		{"Austin", []string{"a1"}},
		{"Boston", []string{"b1"}},
		{"Chicago", nil},
	}
	for _, tt := range tests {
		t.Run(tt.site, func(t *testing.T) {
			got := index.ActiveDevices(tt.site)
			if len(got) != len(tt.want) {
				t.Fatalf("ActiveDevices(%q) = %d devices, want %d", tt.site, len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i].ID != tt.want[i] {
					t.Errorf("ActiveDevices(%q)[%d] = %s, want %s", tt.site, i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestDeleteDevice(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateDevices([]*domain.Device{{ID: "dev-1", Hostname: "new"}})

	d, ok := index.GetDevice("dev-1")
	if !ok || d.Hostname != "new" {
		t.Errorf("GetDevice() = %+v, %v", d, ok)
	}

	index.DeleteDevice("dev-1")
	index.DeleteDevice("missing")
	if index.Count() != 0 {
		t.Errorf("DeleteDevice() left %d devices", index.Count())
	}
}

func TestSites(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateDevices([]*domain.Device{
		{ID: "1", SiteName: "Boston"},
		{ID: "2", SiteName: "Austin"},
		{ID: "3", SiteName: "Austin"},
		{ID: "4", SiteName: "Denver", Disabled: true},
		{ID: "5"},
	})

	sites := index.Sites()
	if len(sites) != 2 || sites[0] != "Austin" || sites[1] != "Boston" {
		t.Errorf("Sites() = %v, want [Austin Boston]", sites)
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewMemoryIndex()

	snapshot := make([]*domain.Device, 10)
	for i := range snapshot {
		snapshot[i] = &domain.Device{ID: fmt.Sprintf("dev-%d", i), SiteName: "Austin"}
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			index.UpdateDevices(snapshot)
		}()
		go func() {
			defer wg.Done()
			_ = index.ActiveDevices("Austin")
			_ = index.Sites()
		}()
	}
	wg.Wait()

	if got := index.Count(); got != 10 {
		t.Errorf("Count() after concurrent updates = %d, want 10", got)
	}
}
