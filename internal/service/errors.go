package service

import "errors"

// ErrEmptyLeaderboard is returned (wrapped in a SourceError) when the
// leaderboard responds but carries no usable traders.
var ErrEmptyLeaderboard = errors.New("leaderboard returned no traders")

// SourceError marks a snapshot run aborted because the leaderboard could
// not be fetched or was unusable. Per-trader position failures are not
// source errors; they are absorbed inside the run.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return "leaderboard source: " + e.Err.Error()
}

func (e *SourceError) Unwrap() error { return e.Err }

// StorageError marks a snapshot that was computed but could not be
// persisted. The snapshot is discarded; retention state is unchanged.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "snapshot storage: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }
