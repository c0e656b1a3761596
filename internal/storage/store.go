package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hyperdash/monitor/internal/domain/models"
	"github.com/hyperdash/monitor/internal/logger"
)

// SnapshotStore defines the contract for the bounded snapshot history.
//
// The store is the single owner of the in-memory history: every mutation
// goes through Append, and readers only ever see copies. In-memory state
// always mirrors the last successfully persisted state.
type SnapshotStore interface {
	// Load reads the persisted history once at startup and returns how many
	// snapshots were restored. A missing or unreadable file is a cold start,
	// never an error.
	Load() int
	// History returns a copy of the history, oldest first.
	History() []models.Snapshot
	// Latest returns the most recent snapshot, if any.
	Latest() (models.Snapshot, bool)
	// Count returns the number of retained snapshots.
	Count() int
	// Append adds a snapshot, evicts the oldest entries beyond maxCount, and
	// persists the result atomically. On persist failure the in-memory
	// history is left unchanged and the snapshot is dropped.
	Append(snap models.Snapshot, maxCount int) error
	// Ping reports whether the storage location is reachable (readiness).
	Ping() error
}

type fileStore struct {
	path string
	mu   sync.RWMutex
	// snaps is kept non-nil so an empty history persists as [], not null.
	snaps []models.Snapshot
	log   zerolog.Logger
}

// NewFileStore creates a store persisting to a single JSON file at path.
// Call Load before serving reads.
func NewFileStore(path string) SnapshotStore {
	return &fileStore{
		path:  path,
		snaps: make([]models.Snapshot, 0),
		log:   logger.C("store"),
	}
}

// AppendBounded returns a new history with snap appended and the oldest
// entries evicted while the length exceeds maxCount (non-positive maxCount
// disables eviction). The input slice is never modified.
func AppendBounded(history []models.Snapshot, snap models.Snapshot, maxCount int) []models.Snapshot {
	out := make([]models.Snapshot, 0, len(history)+1)
	out = append(out, history...)
	out = append(out, snap)
	if maxCount > 0 && len(out) > maxCount {
		out = out[len(out)-maxCount:]
	}
	return out
}

func (s *fileStore) Load() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snaps = make([]models.Snapshot, 0)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info().Str("path", s.path).Msg("no snapshot file, cold start")
		} else {
			s.log.Warn().Err(err).Str("path", s.path).Msg("snapshot file unreadable, cold start")
		}
		return 0
	}

	var snaps []models.Snapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("snapshot file corrupt, cold start")
		return 0
	}
	if snaps != nil {
		s.snaps = snaps
	}

	s.log.Info().Int("snapshots", len(s.snaps)).Str("path", s.path).Msg("history loaded")
	return len(s.snaps)
}

func (s *fileStore) History() []models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Snapshots are append-only and never edited in place, so a top-level
	// copy is enough to keep readers isolated from later appends.
	out := make([]models.Snapshot, len(s.snaps))
	copy(out, s.snaps)
	return out
}

func (s *fileStore) Latest() (models.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.snaps) == 0 {
		return models.Snapshot{}, false
	}
	return s.snaps[len(s.snaps)-1], true
}

func (s *fileStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snaps)
}

func (s *fileStore) Append(snap models.Snapshot, maxCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snaps
	s.snaps = AppendBounded(s.snaps, snap, maxCount)

	if err := s.persistLocked(); err != nil {
		// Keep memory mirroring disk: the failed snapshot is lost for this
		// cycle rather than diverging from what a restart would reload.
		s.snaps = prev
		return err
	}
	return nil
}

func (s *fileStore) Ping() error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("storage dir %s: %w", dir, err)
	}
	return nil
}

// persistLocked writes the full history as compact JSON. The write goes to a
// temporary file first and is renamed into place, so a crash mid-write can
// never leave a truncated history behind. Callers must hold the write lock.
func (s *fileStore) persistLocked() error {
	data, err := json.Marshal(s.snaps)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
