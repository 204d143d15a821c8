package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/devcat/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultDeviceTTL is the default TTL for device entries (7 days)
	DefaultDeviceTTL = 7 * 24 * time.Hour

	// mgetBatch bounds the number of keys fetched per MGET.
	mgetBatch = 500
)

// Store mirrors device records in Redis. It never stores categories.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		ttl:    DefaultDeviceTTL,
	}
}

// Ping checks the connection, used by /infra.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// GetDevice retrieves a device from Redis by ID.
// It returns ErrDeviceNotFound when the key is missing or expired.
func (s *Store) GetDevice(ctx context.Context, id string) (*domain.Device, error) {
	data, err := s.client.Get(ctx, DeviceKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
		}
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	var d domain.Device
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal device %s: %w", id, err)
	}
	return &d, nil
}

// GetAllDevices retrieves every mirrored device. IDs whose key expired or
// holds invalid JSON are skipped; the returned slice is never nil.
func (s *Store) GetAllDevices(ctx context.Context) ([]*domain.Device, error) {
	ids, err := s.client.SMembers(ctx, AllDevicesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get device IDs: %w", err)
	}

	devices := make([]*domain.Device, 0, len(ids))
	for start := 0; start < len(ids); start += mgetBatch {
		batch := ids[start:min(start+mgetBatch, len(ids))]
		keys := make([]string, len(batch))
		for i, id := range batch {
			keys[i] = DeviceKey(id)
		}

		values, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get devices: %w", err)
		}
		for _, v := range values {
			raw, ok := v.(string)
			if !ok {
				continue
			}
			var d domain.Device
			if err := json.Unmarshal([]byte(raw), &d); err != nil {
				continue
			}
			devices = append(devices, &d)
		}
	}

	return devices, nil
}

// DeleteDevice removes a device from Redis
func (s *Store) DeleteDevice(ctx context.Context, id string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, DeviceKey(id))
		pipe.SRem(ctx, AllDevicesKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete device %s: %w", id, err)
	}
	return nil
}

// SaveDevicesMany stores multiple devices in one pipeline (bulk operation)
func (s *Store) SaveDevicesMany(ctx context.Context, devices []*domain.Device) error {
	if len(devices) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, d := range devices {
		data, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to marshal device %s: %w", d.ID, err)
		}
		pipe.Set(ctx, DeviceKey(d.ID), data, s.ttl)
		pipe.SAdd(ctx, AllDevicesKey(), d.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save devices: %w", err)
	}
	return nil
}
