package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/devcat/internal/domain"
	"github.com/MrSnakeDoc/devcat/internal/index"
	"github.com/MrSnakeDoc/devcat/internal/logger"
	"github.com/MrSnakeDoc/devcat/internal/scheduler"
	"github.com/MrSnakeDoc/devcat/internal/version"
)

// DeviceMirror is the part of the Redis device store the API reads.
type DeviceMirror interface {
	Ping(ctx context.Context) error
	GetDevice(ctx context.Context, id string) (*domain.Device, error)
}

// ReloadReporter exposes the outcome of the last inventory reload.
type ReloadReporter interface {
	LastSummary() scheduler.ReloadSummary
}

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Build           version.Info
	TimeNow         func() time.Time   // for testing, defaults to time.Now
	AllowedHosts    []string           // Host headers allowed to access the server
	AllowedCIDRS    []string           // IPs allowed to access the server
	TrustProxy      bool               // true if running behind a trusted reverse proxy
	MemoryIndex     *index.MemoryIndex // Current device snapshot
	Redis           DeviceMirror       // nil when running from memory only
	Reloads         ReloadReporter     // nil until the reloader is built
	ReloadTrigger   chan struct{}      // Channel to trigger a manual inventory reload
	ClassifyWorkers int                // goroutines used to classify device lists
	DriftSamples    int                // devices quoted per drift list
	RateBurst       int                // /api/classify burst per client IP
	RatePerMin      int                // /api/classify refill per client IP
}

// Now returns d.TimeNow() or time.Now().
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
