package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/devcat/internal/domain"
)

// DeviceStore is the Redis mirror as seen by the schedulers. A nil
// DeviceStore means the service runs from memory only.
type DeviceStore interface {
	SaveDevicesMany(ctx context.Context, devices []*domain.Device) error
	GetAllDevices(ctx context.Context) ([]*domain.Device, error)
	DeleteDevice(ctx context.Context, id string) error
}
