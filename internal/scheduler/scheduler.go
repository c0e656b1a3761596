// Package scheduler drives periodic snapshot runs and guards against
// overlapping executions. At most one run is in flight at any time; a
// trigger that arrives while a run is active is rejected, never queued.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/hyperdash/monitor/internal/domain/models"
	"github.com/hyperdash/monitor/internal/logger"
	"github.com/hyperdash/monitor/internal/metrics"
)

// ErrBusy is returned when a snapshot run is already in progress.
var ErrBusy = errors.New("snapshot run already in progress")

// Runner executes one snapshot run.
type Runner interface {
	TakeSnapshot(ctx context.Context) (models.Snapshot, error)
}

// Scheduler triggers snapshot runs on a fixed interval and on demand.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	log      zerolog.Logger

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a Scheduler that fires every interval once started.
func New(runner Runner, interval time.Duration) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		log:      logger.C("scheduler"),
	}
}

// Start launches the interval loop. When immediate is true the first run
// fires right away instead of waiting a full interval; callers pass false
// when a persisted history already covers the current window.
func (s *Scheduler) Start(ctx context.Context, immediate bool) {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.loop(immediate)

	s.log.Info().Dur("interval", s.interval).Bool("immediate", immediate).Msg("scheduler started")
}

// Stop cancels the loop and waits for it, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info().Msg("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow triggers a snapshot run on the caller's context. It returns
// ErrBusy when a run is already in flight.
func (s *Scheduler) RunNow(ctx context.Context) (models.Snapshot, error) {
	return s.runOnce(ctx, "manual")
}

// Running reports whether a snapshot run is currently in flight.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

func (s *Scheduler) loop(immediate bool) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if immediate {
		s.tick()
	}

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Scheduler) tick() {
	_, err := s.runOnce(s.ctx, "interval")
	switch {
	case err == nil:
	case errors.Is(err, ErrBusy):
		s.log.Warn().Msg("previous run still in progress, skipping tick")
	case s.ctx.Err() != nil:
		// Shutdown interrupted the run; the loop exits on the next select.
	default:
		s.log.Error().Err(err).Msg("scheduled snapshot failed")
	}
}

func (s *Scheduler) runOnce(ctx context.Context, trigger string) (models.Snapshot, error) {
	if !s.running.CompareAndSwap(false, true) {
		metrics.SnapshotsTotal.WithLabelValues(trigger, "busy").Inc()
		return models.Snapshot{}, ErrBusy
	}
	defer s.running.Store(false)

	snap, err := s.runner.TakeSnapshot(ctx)
	if err != nil {
		metrics.SnapshotsTotal.WithLabelValues(trigger, "failure").Inc()
		return models.Snapshot{}, err
	}
	metrics.SnapshotsTotal.WithLabelValues(trigger, "success").Inc()
	return snap, nil
}
