package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hyperdash/monitor/internal/domain/models"
)

// fakeRunner counts runs and can block until released to simulate a slow
// snapshot.
type fakeRunner struct {
	calls atomic.Int32
	gate  chan struct{}
	err   error
}

func (f *fakeRunner) TakeSnapshot(ctx context.Context) (models.Snapshot, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return models.Snapshot{}, ctx.Err()
		}
	}
	if f.err != nil {
		return models.Snapshot{}, f.err
	}
	return models.Snapshot{TimestampMillis: 42}, nil
}

var _ Runner = (*fakeRunner)(nil)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestRunNow(t *testing.T) {
	runner := &fakeRunner{}
	s := New(runner, time.Hour)

	snap, err := s.RunNow(context.Background())
	if err != nil {
		t.Fatalf("RunNow returned error: %v", err)
	}
	if snap.TimestampMillis != 42 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if got := runner.calls.Load(); got != 1 {
		t.Fatalf("expected 1 run, got %d", got)
	}
}

func TestRunNowPropagatesRunnerError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("boom")}
	s := New(runner, time.Hour)

	if _, err := s.RunNow(context.Background()); err == nil || errors.Is(err, ErrBusy) {
		t.Fatalf("expected runner error, got %v", err)
	}
	if s.Running() {
		t.Fatal("scheduler should be idle after a failed run")
	}
}

func TestRunNowWhileBusy(t *testing.T) {
	runner := &fakeRunner{gate: make(chan struct{})}
	s := New(runner, time.Hour)

	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = s.RunNow(context.Background())
	}()

	<-started
	waitFor(t, func() bool { return s.Running() })

	if _, err := s.RunNow(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(runner.gate)
	waitFor(t, func() bool { return !s.Running() })

	// Idle again: the next trigger must be accepted.
	if _, err := s.RunNow(context.Background()); err != nil {
		t.Fatalf("expected run to be accepted after release, got %v", err)
	}
}

func TestStartRunsImmediatelyAndOnInterval(t *testing.T) {
	runner := &fakeRunner{}
	s := New(runner, 20*time.Millisecond)

	s.Start(context.Background(), true)
	defer func() { _ = s.Stop(context.Background()) }()

	waitFor(t, func() bool { return runner.calls.Load() >= 3 })
}

func TestStartWithoutImmediateWaitsForTick(t *testing.T) {
	runner := &fakeRunner{}
	s := New(runner, time.Hour)

	s.Start(context.Background(), false)
	defer func() { _ = s.Stop(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	if got := runner.calls.Load(); got != 0 {
		t.Fatalf("expected no runs before first tick, got %d", got)
	}
}

func TestIntervalRunsNeverOverlap(t *testing.T) {
	runner := &fakeRunner{gate: make(chan struct{})}
	s := New(runner, 10*time.Millisecond)

	s.Start(context.Background(), true)

	waitFor(t, func() bool { return runner.calls.Load() == 1 })
	time.Sleep(60 * time.Millisecond)
	if got := runner.calls.Load(); got != 1 {
		t.Fatalf("no new run may start while one is active, got %d runs", got)
	}

	close(runner.gate)
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestStopCancelsInFlightRun(t *testing.T) {
	runner := &fakeRunner{gate: make(chan struct{})}
	s := New(runner, time.Hour)

	s.Start(context.Background(), true)
	waitFor(t, func() bool { return runner.calls.Load() == 1 })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop should drain after cancellation, got %v", err)
	}
}

func TestStopBeforeStart(t *testing.T) {
	s := New(&fakeRunner{}, time.Hour)
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop without start should be a no-op, got %v", err)
	}
}
