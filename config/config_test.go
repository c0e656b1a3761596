package config

import (
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestLoadConfig_Defaults verifies that defaults are loaded for every setting.
func TestLoadConfig_Defaults(t *testing.T) {
	// Clear relevant env vars to ensure defaults are used
	for _, key := range []string{
		"SERVER_PORT", "RATE_LIMIT_RPM", "DATA_FILE",
		"TOP_TRADERS", "SNAPSHOT_INTERVAL", "MAX_SNAPSHOTS", "MAX_ASSETS", "DISPLAY_ASSETS",
		"HL_INFO_URL", "HL_LEADERBOARD_URL", "FETCH_TIMEOUT", "FETCH_BATCH_SIZE", "FETCH_BATCH_DELAY",
	} {
		_ = os.Unsetenv(key)
	}

	LoadConfig()

	if AppConfig.Server.Port != "8080" {
		t.Fatalf("expected default SERVER_PORT=8080, got %q", AppConfig.Server.Port)
	}
	if AppConfig.Server.RateLimitPerMinute != 120 {
		t.Fatalf("expected default RATE_LIMIT_RPM=120, got %d", AppConfig.Server.RateLimitPerMinute)
	}
	if AppConfig.Storage.DataFile != "snapshots.json" {
		t.Fatalf("expected default DATA_FILE=snapshots.json, got %q", AppConfig.Storage.DataFile)
	}
	if AppConfig.Snapshot.TopTraders != 100 || AppConfig.Snapshot.MaxSnapshots != 48 || AppConfig.Snapshot.MaxAssets != 60 || AppConfig.Snapshot.DisplayAssets != 30 {
		t.Fatalf("unexpected snapshot defaults: %+v", AppConfig.Snapshot)
	}
	if AppConfig.Snapshot.Interval != 4*time.Hour {
		t.Fatalf("expected default SNAPSHOT_INTERVAL=4h, got %s", AppConfig.Snapshot.Interval)
	}
	if AppConfig.Hyperliquid.InfoURL != "https://api.hyperliquid.xyz/info" {
		t.Fatalf("unexpected default HL_INFO_URL: %q", AppConfig.Hyperliquid.InfoURL)
	}
	if AppConfig.Hyperliquid.LeaderboardURL != "https://stats-data.hyperliquid.xyz/Mainnet/leaderboard" {
		t.Fatalf("unexpected default HL_LEADERBOARD_URL: %q", AppConfig.Hyperliquid.LeaderboardURL)
	}
	if AppConfig.Hyperliquid.FetchTimeout != 15*time.Second {
		t.Fatalf("expected default FETCH_TIMEOUT=15s, got %s", AppConfig.Hyperliquid.FetchTimeout)
	}
	if AppConfig.Hyperliquid.FetchBatchSize != 20 || AppConfig.Hyperliquid.FetchBatchDelay != 100*time.Millisecond {
		t.Fatalf("unexpected fetch pacing defaults: %+v", AppConfig.Hyperliquid)
	}
}

// TestLoadConfig_EnvOverrides verifies that environment variables take precedence over defaults.
func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOP_TRADERS", "25")
	t.Setenv("SNAPSHOT_INTERVAL", "30m")
	t.Setenv("DATA_FILE", "/tmp/hyperdash-test.json")

	LoadConfig()

	if AppConfig.Server.Port != "9090" {
		t.Fatalf("expected SERVER_PORT override 9090, got %q", AppConfig.Server.Port)
	}
	if AppConfig.Snapshot.TopTraders != 25 {
		t.Fatalf("expected TOP_TRADERS override 25, got %d", AppConfig.Snapshot.TopTraders)
	}
	if AppConfig.Snapshot.Interval != 30*time.Minute {
		t.Fatalf("expected SNAPSHOT_INTERVAL override 30m, got %s", AppConfig.Snapshot.Interval)
	}
	if AppConfig.Storage.DataFile != "/tmp/hyperdash-test.json" {
		t.Fatalf("expected DATA_FILE override, got %q", AppConfig.Storage.DataFile)
	}
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig triggers a fatal exit
// when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_VALIDATE_FATAL") == "1" {
		// In child process: set empty AppConfig and call validateConfig() to trigger log.Fatalf (os.Exit)
		AppConfig = Config{}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_VALIDATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
