package scheduler

import (
	"context"
	"errors"
	"sync"

	"github.com/MrSnakeDoc/devcat/internal/domain"
)

// memStore is an in-memory DeviceStore for tests.
type memStore struct {
	mu      sync.Mutex
	devices map[string]*domain.Device
	saves   int
	deletes []string
	failAll bool
}

func newMemStore() *memStore {
	return &memStore{devices: make(map[string]*domain.Device)}
}

var errStoreDown = errors.New("store down")

func (s *memStore) SaveDevicesMany(_ context.Context, devices []*domain.Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errStoreDown
	}
	s.saves++
	for _, d := range devices {
		c := *d
		s.devices[d.ID] = &c
	}
	return nil
}

func (s *memStore) GetAllDevices(_ context.Context) ([]*domain.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return nil, errStoreDown
	}
	out := make([]*domain.Device, 0, len(s.devices))
	for _, d := range s.devices {
		c := *d
		out = append(out, &c)
	}
	return out, nil
}

func (s *memStore) DeleteDevice(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errStoreDown
	}
	s.deletes = append(s.deletes, id)
	delete(s.devices, id)
	return nil
}
