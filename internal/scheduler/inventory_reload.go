package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/devcat/internal/domain"
	"github.com/MrSnakeDoc/devcat/internal/index"
	"github.com/MrSnakeDoc/devcat/internal/logger"
	"github.com/MrSnakeDoc/devcat/internal/sources/inventory"
)

// ReloadSummary describes the outcome of the last inventory reload.
type ReloadSummary struct {
	At          time.Time               `json:"at"`
	Duration    time.Duration           `json:"duration"`
	Files       int                     `json:"files"`
	FailedFiles []string                `json:"failed_files,omitempty"`
	Loaded      int                     `json:"loaded"`
	Duplicates  int                     `json:"duplicates"`
	Active      int                     `json:"active"`
	Disabled    int                     `json:"disabled"`
	Categories  map[domain.Category]int `json:"categories"`
	Drift       int                     `json:"physical_drift"`
	Overlap     int                     `json:"server_desktop_overlap"`
}

// InventoryReloader handles periodic reloading of the inventory files
type InventoryReloader struct {
	loaders       []*inventory.Loader
	mapper        *inventory.Mapper
	store         DeviceStore
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	workers       int
	stopCh        chan struct{}
	manualTrigger chan struct{}

	mu   sync.Mutex // serializes Reload
	last ReloadSummary
}

// NewInventoryReloader creates a new inventory reloader
func NewInventoryReloader(
	files []string,
	store DeviceStore,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	workers int,
	manualTrigger chan struct{},
) *InventoryReloader {
	loaders := make([]*inventory.Loader, 0, len(files))
	for _, f := range files {
		loaders = append(loaders, inventory.NewLoader(f))
	}

	return &InventoryReloader{
		loaders:       loaders,
		mapper:        inventory.NewMapper(),
		store:         store,
		index:         idx,
		logger:        log,
		interval:      interval,
		workers:       workers,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads once, then reloads on every tick or manual trigger.
// A failed initial load is fatal unless the index was already warmed from Redis.
func (ir *InventoryReloader) Start(ctx context.Context) error {
	if err := ir.Reload(ctx); err != nil {
		if ir.index.Count() == 0 {
			return fmt.Errorf("initial reload failed: %w", err)
		}
		ir.logger.Warn("initial reload failed, serving devices synced from redis",
			logger.Int("devices", ir.index.Count()),
			logger.Error(err))
	}

	ticker := time.NewTicker(ir.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := ir.Reload(ctx); err != nil {
					ir.logger.Error("failed to reload inventory", logger.Error(err))
				}
			case <-ir.manualTrigger:
				ir.logger.Info("manual reload triggered")
				if err := ir.Reload(ctx); err != nil {
					ir.logger.Error("failed to reload inventory", logger.Error(err))
				}
			case <-ir.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (ir *InventoryReloader) Stop() {
	close(ir.stopCh)
}

// LastSummary returns the summary of the last successful reload.
func (ir *InventoryReloader) LastSummary() ReloadSummary {
	ir.mu.Lock()
	defer ir.mu.Unlock()
	return ir.last
}

// Reload loads every inventory file and swaps the index snapshot.
//
// Devices of a file that fails to load are kept as they were. Devices that
// vanished from a file that loaded fine are marked disabled so the garbage
// collector can drop them later. It fails only when no file could be loaded.
func (ir *InventoryReloader) Reload(ctx context.Context) error {
	ir.mu.Lock()
	defer ir.mu.Unlock()

	start := time.Now()
	ir.logger.Info("reloading inventory", logger.Int("files", len(ir.loaders)))

	summary := ReloadSummary{Files: len(ir.loaders)}
	loaded := make(map[string]*domain.Device)
	order := make([]string, 0)
	failedSources := make(map[string]bool)
	var errs []error

	for _, l := range ir.loaders {
		devices, err := ir.loadOne(l)
		if err != nil {
			failedSources[l.Source()] = true
			summary.FailedFiles = append(summary.FailedFiles, l.Path())
			errs = append(errs, err)
			ir.logger.Error("failed to load inventory file",
				logger.String("file", l.Path()),
				logger.Error(err))
			continue
		}

		for _, d := range devices {
			if _, dup := loaded[d.ID]; dup {
				summary.Duplicates++
				continue
			}
			loaded[d.ID] = d
			order = append(order, d.ID)
		}
		summary.Loaded += len(devices)
	}

	if len(errs) == len(ir.loaders) && len(ir.loaders) > 0 {
		return fmt.Errorf("no inventory file could be loaded: %w", errors.Join(errs...))
	}
	if summary.Duplicates > 0 {
		ir.logger.Warn("duplicate device ids across inventory files, keeping the first",
			logger.Int("count", summary.Duplicates))
	}

	now := time.Now()
	next := make([]*domain.Device, 0, len(loaded))
	for _, id := range order {
		d := loaded[id]
		if prev, ok := ir.index.GetDevice(id); ok && !prev.CreatedAt.IsZero() {
			d.CreatedAt = prev.CreatedAt
		}
		next = append(next, d)
	}

	var disabled []*domain.Device
	for _, prev := range ir.index.GetAllDevices() {
		if _, ok := loaded[prev.ID]; ok {
			continue
		}
		if fromAny(prev, failedSources) {
			next = append(next, prev)
			continue
		}
		if prev.Disabled {
			next = append(next, prev)
			continue
		}
		gone := *prev
		gone.Disabled = true
		gone.UpdatedAt = now
		disabled = append(disabled, &gone)
		next = append(next, &gone)
	}

	if len(disabled) > 0 {
		ir.logger.Info("marking removed devices as disabled",
			logger.Int("count", len(disabled)))
	}

	active := make([]*domain.Device, 0, len(next))
	for _, d := range next {
		if !d.Disabled {
			active = append(active, d)
		}
	}

	// Classify before swapping so an interrupted reload leaves the index,
	// the mirror and the last summary consistent with each other.
	cats, err := domain.ClassifyAll(ctx, active, ir.workers)
	if err != nil {
		return fmt.Errorf("classification interrupted: %w", err)
	}
	summary.Categories = make(map[domain.Category]int, len(domain.AllCategories()))
	for _, c := range cats {
		summary.Categories[c]++
	}
	summary.Active = len(active)
	summary.Disabled = len(next) - len(active)

	ir.index.UpdateDevices(next)

	// Update Redis store (best effort)
	if ir.store != nil {
		if err := ir.store.SaveDevicesMany(ctx, next); err != nil {
			ir.logger.Warn("failed to save devices to redis", logger.Error(err))
		} else {
			ir.logger.Debug("devices saved to redis", logger.Int("count", len(next)))
		}
	}

	drift := domain.AnalyzeDrift(active, 0)
	summary.Drift = drift.Difference
	summary.Overlap = drift.ServerDesktopOverlap
	summary.At = now
	summary.Duration = time.Since(start)
	ir.last = summary

	ir.logSummary(summary)
	return nil
}

func (ir *InventoryReloader) loadOne(l *inventory.Loader) ([]*domain.Device, error) {
	file, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", l.Path(), err)
	}
	devices, err := ir.mapper.MapDevices(file, l.Source())
	if err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", l.Path(), err)
	}
	return devices, nil
}

func (ir *InventoryReloader) logSummary(s ReloadSummary) {
	fields := []logger.Field{
		logger.Int("active", s.Active),
		logger.Int("disabled", s.Disabled),
		logger.Int("failed_files", len(s.FailedFiles)),
		logger.Duration("took", s.Duration),
	}
	for _, c := range domain.AllCategories() {
		fields = append(fields, logger.Int(string(c), s.Categories[c]))
	}
	ir.logger.Info("inventory reloaded", fields...)

	if s.Drift > 0 || s.Overlap > 0 {
		ir.logger.Info("physical server rule drift",
			logger.Int("non_strict_only", s.Drift),
			logger.Int("server_desktop_overlap", s.Overlap))
	}
}

// fromAny reports whether d was loaded from one of sources.
func fromAny(d *domain.Device, sources map[string]bool) bool {
	for _, s := range d.Sources {
		if sources[s] {
			return true
		}
	}
	return false
}
