package service

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/hyperdash/monitor/internal/aggregate"
	"github.com/hyperdash/monitor/internal/domain/models"
	"github.com/hyperdash/monitor/internal/logger"
	"github.com/hyperdash/monitor/internal/metrics"
	"github.com/hyperdash/monitor/internal/storage"
)

// LeaderboardSource lists the traders a snapshot run should cover,
// ordered by account value descending.
type LeaderboardSource interface {
	TopTraders(ctx context.Context, n int) ([]string, error)
}

// PositionFetcher loads one trader's open positions.
type PositionFetcher interface {
	Positions(ctx context.Context, address string) ([]models.Position, error)
}

// SnapshotService defines business logic for building and serving
// leaderboard snapshots.
type SnapshotService interface {
	// TakeSnapshot runs the full pipeline: leaderboard, per-trader
	// positions, aggregation, persistence. It returns a SourceError when
	// the leaderboard is unavailable and a StorageError when the snapshot
	// could not be persisted. Individual trader fetch failures are
	// absorbed; the snapshot is built from whoever loaded.
	TakeSnapshot(ctx context.Context) (models.Snapshot, error)

	// History returns all retained snapshots, oldest first.
	History() []models.Snapshot

	// Latest returns the most recent snapshot, if any.
	Latest() (models.Snapshot, bool)
}

// Options carries the tunables for snapshot runs.
type Options struct {
	TopTraders   int
	MaxAssets    int
	MaxSnapshots int
	BatchSize    int           // traders fetched concurrently per batch
	BatchDelay   time.Duration // pause between batches

	// OnSnapshot, when set, is called after every successfully stored
	// snapshot. Used to push updates to connected clients.
	OnSnapshot func(models.Snapshot)
}

type snapshotService struct {
	source  LeaderboardSource
	fetcher PositionFetcher
	store   storage.SnapshotStore
	opts    Options
	log     zerolog.Logger
}

// NewSnapshotService creates a SnapshotService. A non-positive batch size
// falls back to 20.
func NewSnapshotService(source LeaderboardSource, fetcher PositionFetcher, store storage.SnapshotStore, opts Options) SnapshotService {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 20
	}
	return &snapshotService{
		source:  source,
		fetcher: fetcher,
		store:   store,
		opts:    opts,
		log:     logger.C("service"),
	}
}

func (s *snapshotService) TakeSnapshot(ctx context.Context) (models.Snapshot, error) {
	runID := ulid.Make().String()
	start := time.Now()
	defer func() {
		metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
	}()
	log := s.log.With().Str("run_id", runID).Logger()

	addresses, err := s.source.TopTraders(ctx, s.opts.TopTraders)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard fetch failed")
		return models.Snapshot{}, &SourceError{Err: err}
	}
	if len(addresses) == 0 {
		log.Error().Msg("leaderboard returned no traders")
		return models.Snapshot{}, &SourceError{Err: ErrEmptyLeaderboard}
	}
	log.Info().Int("traders", len(addresses)).Msg("snapshot run started")

	results, err := s.fetchAll(ctx, log, addresses)
	if err != nil {
		log.Warn().Err(err).Msg("snapshot run aborted")
		return models.Snapshot{}, fmt.Errorf("fetch positions: %w", err)
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		metrics.TraderFetchErrors.Add(float64(failed))
	}

	snap := aggregate.BuildSnapshot(results, s.opts.MaxAssets)
	metrics.TradersLoaded.Set(float64(snap.TradersLoaded))

	if err := s.store.Append(snap, s.opts.MaxSnapshots); err != nil {
		log.Error().Err(err).Msg("snapshot persist failed")
		return models.Snapshot{}, &StorageError{Err: err}
	}
	metrics.SnapshotsStored.Set(float64(s.store.Count()))

	log.Info().
		Int("traders_loaded", snap.TradersLoaded).
		Int("fetch_errors", failed).
		Int("assets", len(snap.Assets)).
		Float64("global_ratio", snap.GlobalRatio).
		Dur("elapsed", time.Since(start)).
		Msg("snapshot stored")

	if s.opts.OnSnapshot != nil {
		s.opts.OnSnapshot(snap)
	}
	return snap, nil
}

func (s *snapshotService) History() []models.Snapshot {
	return s.store.History()
}

func (s *snapshotService) Latest() (models.Snapshot, bool) {
	return s.store.Latest()
}
