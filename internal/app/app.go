package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hyperdash/monitor/config"
	"github.com/hyperdash/monitor/internal/api"
	"github.com/hyperdash/monitor/internal/hyperliquid"
	"github.com/hyperdash/monitor/internal/logger"
	"github.com/hyperdash/monitor/internal/metrics"
	"github.com/hyperdash/monitor/internal/middleware"
	"github.com/hyperdash/monitor/internal/scheduler"
	"github.com/hyperdash/monitor/internal/service"
	"github.com/hyperdash/monitor/internal/storage"
	"github.com/hyperdash/monitor/internal/web"
)

// App bundles everything a serving process needs: the HTTP router plus the
// background components that carry their own lifecycles. The caller owns
// those lifecycles (Scheduler.Start/Stop, Hub.Run via context).
type App struct {
	Router    *gin.Engine
	Scheduler *scheduler.Scheduler
	Hub       *api.WSHub
	Store     storage.SnapshotStore

	// ImmediateRun reports whether the scheduler should snapshot right at
	// startup. False when the persisted history already covers the current
	// interval, so a restart does not burn an extra pass over the upstream.
	ImmediateRun bool
}

// InitializeApp sets up all application dependencies and returns
// an App holding the configured Gin router and the background components,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Opens the snapshot file store and loads persisted history.
//   - Creates the Hyperliquid client (leaderboard source and position fetcher).
//   - Wires the snapshot service, with the WebSocket hub notified per snapshot.
//   - Creates the interval scheduler around the service.
//   - Renders the dashboard page and configures the Gin router with all routes.
//   - Registers health and readiness probes.
//
// Returns:
//   - *App: the assembled application components.
//   - error: any initialization error that occurred.
func InitializeApp() (*App, error) {
	// Load global configuration
	cfg := config.AppConfig

	// Open the snapshot store and restore persisted history
	store := storage.NewFileStore(cfg.Storage.DataFile)
	loaded := store.Load()
	metrics.SnapshotsStored.Set(float64(loaded))

	// One client serves both upstream roles
	client := hyperliquid.NewClient(cfg.Hyperliquid.InfoURL, cfg.Hyperliquid.LeaderboardURL, cfg.Hyperliquid.FetchTimeout)

	// Hub broadcasts a note to connected dashboards after each snapshot
	hub := api.NewWSHub()

	// Initialize service layer (business logic)
	svc := service.NewSnapshotService(client, client, store, service.Options{
		TopTraders:   cfg.Snapshot.TopTraders,
		MaxAssets:    cfg.Snapshot.MaxAssets,
		MaxSnapshots: cfg.Snapshot.MaxSnapshots,
		BatchSize:    cfg.Hyperliquid.FetchBatchSize,
		BatchDelay:   cfg.Hyperliquid.FetchBatchDelay,
		OnSnapshot:   hub.NotifySnapshot,
	})

	// Scheduler owns the periodic runs
	sched := scheduler.New(svc, cfg.Snapshot.Interval)

	// Pre-render the dashboard page once
	dash, err := web.NewDashboard(web.Config{
		TopTraders:    cfg.Snapshot.TopTraders,
		DisplayAssets: cfg.Snapshot.DisplayAssets,
		Interval:      cfg.Snapshot.Interval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc, sched)

	// Apply the configured per-client request budget
	middleware.ConfigureRateLimit(cfg.Server.RateLimitPerMinute)

	// Setup Gin router with routes
	router := api.NewRouter(handler, hub, dash)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(store.Ping)
	healthHandler.Register(router)

	return &App{
		Router:       router,
		Scheduler:    sched,
		Hub:          hub,
		Store:        store,
		ImmediateRun: needImmediateRun(store, cfg.Snapshot.Interval),
	}, nil
}

// needImmediateRun decides whether the first snapshot happens at startup.
// A persisted snapshot younger than one interval already covers the current
// window, so the first run can wait for the ticker instead.
func needImmediateRun(store storage.SnapshotStore, interval time.Duration) bool {
	latest, ok := store.Latest()
	if !ok {
		return true
	}
	age := time.Since(time.UnixMilli(latest.TimestampMillis))
	if age >= interval {
		return true
	}
	log := logger.C("app")
	log.Info().
		Str("age", age.Round(time.Second).String()).
		Msg("recent snapshot on disk, first run waits for the ticker")
	return false
}
