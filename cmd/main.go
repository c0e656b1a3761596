package main

//
//  @title           HyperDash Monitor API
//  @version         1.0
//  @description     Hyperliquid top-trader position aggregation service.
//  @termsOfService  https://github.com/hyperdash/monitor
//  @contact.name    API Support
//  @contact.url     https://github.com/hyperdash/monitor
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        snapshots
//  @tag.description Endpoints for querying and triggering position snapshots
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyperdash/monitor/config"
	_ "github.com/hyperdash/monitor/docs" // swagger docs
	"github.com/hyperdash/monitor/internal/app"
	"github.com/hyperdash/monitor/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to stop background components.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the hyperdash application.
//
// Modes (selected via --mode flag):
//   - serve:    Starts the HTTP server plus the interval snapshot scheduler.
//   - snapshot: Takes a single snapshot, persists it, and exits.
//
// Flags:
//   - --mode: Execution mode ("serve" or "snapshot"). Default: "serve".
//   - --port: Port for the HTTP server. Defaults to value from config (SERVER_PORT).
//   - --data: Snapshot history file. Defaults to value from config (DATA_FILE).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "serve", "Mode: serve or snapshot")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for serve mode")
	dataFile := flag.String("data", config.AppConfig.Storage.DataFile, "Path of the snapshot history file")
	flag.Parse()

	// Flag values win over environment for the wiring below
	config.AppConfig.Server.Port = *port
	config.AppConfig.Storage.DataFile = *dataFile

	switch *mode {
	case "snapshot":
		// One-shot mode: take a single snapshot and exit
		logger.L().Info().Msg("taking one snapshot")

		application, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		snap, err := application.Scheduler.RunNow(ctx)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("snapshot failed")
		}
		logger.L().Info().
			Int("traders_loaded", snap.TradersLoaded).
			Int("assets", len(snap.Assets)).
			Float64("global_ratio", snap.GlobalRatio).
			Msg("snapshot completed")

	case "serve":
		// Serve mode: start the HTTP server and the snapshot scheduler
		logger.L().Info().Msg("starting server")

		application, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		// Background components share one lifecycle context
		runCtx, cancel := context.WithCancel(ctx)
		go application.Hub.Run(runCtx)
		application.Scheduler.Start(runCtx, application.ImmediateRun)

		server := startServer(application.Router, *port)
		gracefulShutdown(ctx, server, func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer stopCancel()
			if err := application.Scheduler.Stop(stopCtx); err != nil {
				logger.L().Warn().Err(err).Msg("scheduler did not stop cleanly")
			}
			cancel()
		})

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
