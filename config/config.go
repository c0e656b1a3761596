package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, snapshot storage, and the Hyperliquid API endpoints.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	RATE_LIMIT_RPM=120
//	DATA_FILE=snapshots.json
//	TOP_TRADERS=100
//	SNAPSHOT_INTERVAL=4h
//	MAX_SNAPSHOTS=48
//	MAX_ASSETS=60
//	DISPLAY_ASSETS=30
//	HL_INFO_URL=https://api.hyperliquid.xyz/info
//	HL_LEADERBOARD_URL=https://stats-data.hyperliquid.xyz/Mainnet/leaderboard
//	FETCH_TIMEOUT=15s
//	FETCH_BATCH_SIZE=20
//	FETCH_BATCH_DELAY=100ms
type Config struct {
	Server      ServerConfig      // HTTP server configuration
	Storage     StorageConfig     // Snapshot persistence settings
	Snapshot    SnapshotConfig    // Snapshot schedule and retention
	Hyperliquid HyperliquidConfig // Upstream Hyperliquid API settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port               string // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimitPerMinute int    // Per-client request budget enforced by the rate limiter
}

// StorageConfig defines where snapshot history is persisted between restarts.
type StorageConfig struct {
	DataFile string // Path of the JSON file holding the snapshot history
}

// SnapshotConfig controls how snapshots are taken and retained.
//
// Fields:
//   - TopTraders: how many leaderboard traders each snapshot covers.
//   - Interval: how often the scheduler takes a snapshot.
//   - MaxSnapshots: how many snapshots are kept before the oldest is dropped.
//   - MaxAssets: how many per-asset rows are stored in each snapshot.
//   - DisplayAssets: how many asset rows the dashboard table renders.
type SnapshotConfig struct {
	TopTraders    int
	Interval      time.Duration
	MaxSnapshots  int
	MaxAssets     int
	DisplayAssets int
}

// HyperliquidConfig defines the upstream endpoints and fetch pacing.
//
// Fields:
//   - InfoURL: POST endpoint for per-trader clearinghouse state.
//   - LeaderboardURL: GET endpoint for the trader leaderboard.
//   - FetchTimeout: per-request HTTP timeout against the upstream.
//   - FetchBatchSize: how many traders are fetched concurrently per batch.
//   - FetchBatchDelay: pause between batches to stay under upstream rate limits.
type HyperliquidConfig struct {
	InfoURL         string
	LeaderboardURL  string
	FetchTimeout    time.Duration
	FetchBatchSize  int
	FetchBatchDelay time.Duration
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Calls validateConfig() to ensure required fields are present.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_RPM", 120)

	viper.SetDefault("DATA_FILE", "snapshots.json")

	viper.SetDefault("TOP_TRADERS", 100)
	viper.SetDefault("SNAPSHOT_INTERVAL", "4h")
	viper.SetDefault("MAX_SNAPSHOTS", 48)
	viper.SetDefault("MAX_ASSETS", 60)
	viper.SetDefault("DISPLAY_ASSETS", 30)

	viper.SetDefault("HL_INFO_URL", "https://api.hyperliquid.xyz/info")
	viper.SetDefault("HL_LEADERBOARD_URL", "https://stats-data.hyperliquid.xyz/Mainnet/leaderboard")
	viper.SetDefault("FETCH_TIMEOUT", "15s")
	viper.SetDefault("FETCH_BATCH_SIZE", 20)
	viper.SetDefault("FETCH_BATCH_DELAY", "100ms")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_RPM"),
		},
		Storage: StorageConfig{
			DataFile: viper.GetString("DATA_FILE"),
		},
		Snapshot: SnapshotConfig{
			TopTraders:    viper.GetInt("TOP_TRADERS"),
			Interval:      viper.GetDuration("SNAPSHOT_INTERVAL"),
			MaxSnapshots:  viper.GetInt("MAX_SNAPSHOTS"),
			MaxAssets:     viper.GetInt("MAX_ASSETS"),
			DisplayAssets: viper.GetInt("DISPLAY_ASSETS"),
		},
		Hyperliquid: HyperliquidConfig{
			InfoURL:         viper.GetString("HL_INFO_URL"),
			LeaderboardURL:  viper.GetString("HL_LEADERBOARD_URL"),
			FetchTimeout:    viper.GetDuration("FETCH_TIMEOUT"),
			FetchBatchSize:  viper.GetInt("FETCH_BATCH_SIZE"),
			FetchBatchDelay: viper.GetDuration("FETCH_BATCH_DELAY"),
		},
	}

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// This avoids unexpected runtime failures due to incomplete configuration.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Storage.DataFile == "" {
		missing = append(missing, "DATA_FILE")
	}
	if AppConfig.Snapshot.TopTraders <= 0 {
		missing = append(missing, "TOP_TRADERS")
	}
	if AppConfig.Snapshot.Interval <= 0 {
		missing = append(missing, "SNAPSHOT_INTERVAL")
	}
	if AppConfig.Hyperliquid.InfoURL == "" {
		missing = append(missing, "HL_INFO_URL")
	}
	if AppConfig.Hyperliquid.LeaderboardURL == "" {
		missing = append(missing, "HL_LEADERBOARD_URL")
	}
	if AppConfig.Hyperliquid.FetchTimeout <= 0 {
		missing = append(missing, "FETCH_TIMEOUT")
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", missing)
	}
}
