package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/devcat/internal/index"
	"github.com/MrSnakeDoc/devcat/internal/logger"
)

const (
	// DefaultGCThreshold is the duration after which disabled devices are deleted
	DefaultGCThreshold = 30 * 24 * time.Hour // 30 days
)

// GarbageCollector deletes devices that have been disabled for too long
type GarbageCollector struct {
	store     DeviceStore
	index     *index.MemoryIndex
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
	now       func() time.Time
}

// NewGarbageCollector creates a new garbage collector
func NewGarbageCollector(
	store DeviceStore,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *GarbageCollector {
	if threshold <= 0 {
		threshold = DefaultGCThreshold
	}

	return &GarbageCollector{
		store:     store,
		index:     idx,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
		now:       time.Now,
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	if _, err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed", logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed", logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect removes devices disabled for longer than the threshold and returns
// how many were deleted. Redis deletions are best effort.
func (gc *GarbageCollector) Collect(ctx context.Context) (int, error) {
	gc.logger.Debug("running garbage collection for disabled devices")

	now := gc.now()
	deleted := 0

	for _, d := range gc.index.GetAllDevices() {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if !d.Disabled || d.UpdatedAt.IsZero() {
			continue
		}

		disabledFor := now.Sub(d.UpdatedAt)
		if disabledFor < gc.threshold {
			continue
		}

		gc.index.DeleteDevice(d.ID)

		if gc.store != nil {
			if err := gc.store.DeleteDevice(ctx, d.ID); err != nil {
				gc.logger.Warn("failed to delete device from redis",
					logger.String("device_id", d.ID),
					logger.Error(err))
			}
		}

		gc.logger.Info("garbage collected disabled device",
			logger.String("device_id", d.ID),
			logger.String("hostname", d.Hostname),
			logger.Duration("disabled_for", disabledFor))

		deleted++
	}

	if deleted > 0 {
		gc.logger.Info("garbage collection completed", logger.Int("deleted", deleted))
	} else {
		gc.logger.Debug("no devices to garbage collect")
	}

	return deleted, nil
}
