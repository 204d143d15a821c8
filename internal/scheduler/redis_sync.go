package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/devcat/internal/index"
	"github.com/MrSnakeDoc/devcat/internal/logger"
)

// RedisSyncer warms the memory index from the Redis mirror on startup, so
// the API can answer before the first inventory load completes.
type RedisSyncer struct {
	store  DeviceStore
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store DeviceStore,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads devices from Redis and replaces the memory index with them.
// An empty mirror leaves the index untouched.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing devices from redis to memory")

	devices, err := rs.store.GetAllDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to read devices from redis: %w", err)
	}

	if len(devices) == 0 {
		rs.logger.Info("no devices found in redis")
		return nil
	}

	rs.index.UpdateDevices(devices)

	rs.logger.Info("synced devices from redis", logger.Int("count", len(devices)))
	return nil
}
