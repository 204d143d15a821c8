package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/devcat/internal/config"
	"github.com/MrSnakeDoc/devcat/internal/httpserver"
	"github.com/MrSnakeDoc/devcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devcat/internal/index"
	"github.com/MrSnakeDoc/devcat/internal/logger"
	"github.com/MrSnakeDoc/devcat/internal/redis"
	"github.com/MrSnakeDoc/devcat/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/devcat/internal/store/redis"
	"github.com/MrSnakeDoc/devcat/internal/utils"
	"github.com/MrSnakeDoc/devcat/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.InventoryReloader
	gc          *scheduler.GarbageCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize memory index
	memIndex := index.NewMemoryIndex()

	// Redis is optional; when configured it must be reachable (fail fast).
	// store stays a nil interface in memory-only mode.
	var (
		redisClient *goredis.Client
		store       scheduler.DeviceStore
		mirror      deps.DeviceMirror
	)
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.OptionsFromConfig(cfg), loggerClient.Named("redis"))
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")

		redisClient = client
		s := redisstore.NewStore(client)
		store = s
		mirror = s

		// Warm the index from the last mirrored snapshot
		syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient.Named("sync"))
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to sync from redis on startup, will load from inventory files",
				logger.Error(err))
		}
	} else {
		loggerClient.Info("DEVCAT_REDIS_ADDR not set, running memory-only")
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewInventoryReloader(
		cfg.InventoryFiles,
		store,
		memIndex,
		loggerClient.Named("reloader"),
		cfg.ReloadInterval,
		cfg.ClassifyWorkers,
		reloadTrigger,
	)

	gc := scheduler.NewGarbageCollector(
		store,
		memIndex,
		loggerClient.Named("gc"),
		cfg.GCInterval,
		cfg.GCThreshold,
	)

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Build:           version.Get(),
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		MemoryIndex:     memIndex,
		Redis:           mirror,
		Reloads:         reloader,
		ReloadTrigger:   reloadTrigger,
		ClassifyWorkers: cfg.ClassifyWorkers,
		DriftSamples:    cfg.DriftSamples,
		RateBurst:       cfg.RateBurst,
		RatePerMin:      cfg.RatePerMin,
	}

	server := httpserver.New(cfg, loggerClient.Named("http"), d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		gc:          gc,
	}
}

func (a *App) Run() error {
	defer func() { _ = a.logger.Sync() }()

	a.logger.Infof("🚀 Starting devcat v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("devcat %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start inventory reloader (loads devices and starts periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start inventory reloader: %w", err)
	}
	a.logger.Info("inventory reloader started",
		logger.Int("files", len(a.cfg.InventoryFiles)),
		logger.Int("devices", a.memIndex.Count()),
		logger.Duration("interval", a.cfg.ReloadInterval))

	// Start garbage collector
	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval),
		logger.Duration("threshold", a.cfg.GCThreshold))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.reloader.Stop()
		a.gc.Stop()
		return err
	}

	a.reloader.Stop()
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		utils.MustClose(a.redisClient, a.logger, "redis client")
	}

	a.logger.Info("✅ devcat stopped cleanly")
	return nil
}
