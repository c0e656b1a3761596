// Package metrics provides Prometheus instrumentation for the monitor.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SnapshotsTotal counts snapshot runs, partitioned by what triggered
	// them (interval, manual) and how they ended (success, failure, busy).
	SnapshotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hyperdash_snapshots_total",
		Help: "Total number of snapshot runs",
	}, []string{"trigger", "outcome"})

	// SnapshotDuration tracks end-to-end snapshot run duration.
	SnapshotDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hyperdash_snapshot_duration_seconds",
		Help:    "Snapshot run duration in seconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
	})

	// TraderFetchErrors counts per-trader position fetches that failed.
	TraderFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hyperdash_trader_fetch_errors_total",
		Help: "Position fetches that failed and were skipped",
	})

	// TradersLoaded tracks how many traders contributed to the last snapshot.
	TradersLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hyperdash_traders_loaded",
		Help: "Traders included in the most recent snapshot",
	})

	// SnapshotsStored tracks the number of snapshots held in the store.
	SnapshotsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hyperdash_snapshots_stored",
		Help: "Snapshots currently retained in the store",
	})

	// WebSocketClients tracks connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hyperdash_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hyperdash_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hyperdash_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
