package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyperdash/monitor/internal/domain/dto"
	"github.com/hyperdash/monitor/internal/domain/models"
	"github.com/hyperdash/monitor/internal/scheduler"
	"github.com/hyperdash/monitor/internal/service"
)

// SnapshotTrigger starts an on-demand snapshot run. Satisfied by
// *scheduler.Scheduler; a trigger while a run is active returns
// scheduler.ErrBusy.
type SnapshotTrigger interface {
	RunNow(ctx context.Context) (models.Snapshot, error)
}

// Handler provides HTTP handlers for the snapshot endpoints.
//
// Responsibilities:
//   - Serve the retained snapshot history as JSON
//   - Trigger on-demand snapshot runs through the scheduler
//   - Translate the run error taxonomy into HTTP status codes
type Handler struct {
	svc     service.SnapshotService
	trigger SnapshotTrigger
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.SnapshotService, trigger SnapshotTrigger) *Handler {
	return &Handler{svc: svc, trigger: trigger}
}

// GetSnapshots handles GET /api/snapshots requests.
//
// GetSnapshots godoc
// @Summary      List retained snapshots
// @Description  Returns every retained snapshot, oldest first. An empty history yields an empty array.
// @Tags         snapshots
// @Produce      json
// @Success      200  {array}  models.Snapshot  "Success"
// @Router       /api/snapshots [get]
func (h *Handler) GetSnapshots(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.History())
}

// TakeSnapshotNow handles POST /api/snapshot/now requests (and GET, kept
// for the original dashboard's fetch).
//
// TakeSnapshotNow godoc
// @Summary      Take a snapshot now
// @Description  Runs the full snapshot pipeline immediately and returns the stored snapshot
// @Tags         snapshots
// @Produce      json
// @Success      200  {object}  models.Snapshot    "Success"
// @Failure      409  {object}  dto.ErrorResponse  "A run is already in progress"
// @Failure      502  {object}  dto.ErrorResponse  "Leaderboard source unavailable"
// @Failure      500  {object}  dto.ErrorResponse  "Run or persistence failure"
// @Router       /api/snapshot/now [post]
func (h *Handler) TakeSnapshotNow(c *gin.Context) {
	snap, err := h.trigger.RunNow(c.Request.Context())
	if err == nil {
		c.JSON(http.StatusOK, snap)
		return
	}

	// ─── Map run errors to status codes ───────────────────────
	var srcErr *service.SourceError
	switch {
	case errors.Is(err, scheduler.ErrBusy):
		c.JSON(http.StatusConflict, dto.NewErrorResponse("snapshot already in progress", err))
	case errors.As(err, &srcErr):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse("leaderboard source unavailable", err))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("snapshot failed", err))
	}
}
