package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/hyperdash/monitor/internal/metrics"
	"github.com/hyperdash/monitor/internal/middleware"
	"github.com/hyperdash/monitor/internal/web"
)

// NewRouter creates a Gin engine with routes configured.
// It receives the handlers with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, RateLimiter, CORS, metrics).
//   - Mounts the dashboard, the JSON API, the WebSocket feed, Prometheus
//     metrics, and Swagger docs (/swagger/*any).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//   - No route carries a per-request deadline: the read path serves from
//     memory and a snapshot run can legitimately take minutes.
func NewRouter(handler *Handler, hub *WSHub, dash *web.Dashboard) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
		middleware.RequestMetrics(),
	)

	// ─── CORS ─────────────────────────────────────
	// The dashboard and API are public read-mostly endpoints; any origin
	// may fetch them, as the original service allowed.
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// ─── Dashboard ────────────────────────────────
	router.GET("/", dash.Handler())
	router.GET("/index.html", dash.Handler())

	// ─── WebSocket feed ───────────────────────────
	router.GET("/ws", hub.Handle)

	// ─── Observability ────────────────────────────
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API ──────────────────────────────────────
	api := router.Group("/api")
	{
		api.GET("/snapshots", handler.GetSnapshots)
		api.POST("/snapshot/now", handler.TakeSnapshotNow)
		api.GET("/snapshot/now", handler.TakeSnapshotNow)
	}

	return router
}
