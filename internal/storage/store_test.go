package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hyperdash/monitor/internal/domain/models"
)

func snap(ts int64) models.Snapshot {
	return models.Snapshot{
		TimestampMillis:    ts,
		GlobalRatio:        0.6667,
		TotalLongNotional:  1000,
		TotalShortNotional: 500,
		TradersLoaded:      2,
		Assets: []models.AssetStats{{
			Asset: "BTC", Ratio: 0.6667, TotalNotional: 1500,
			LongNotional: 1000, ShortNotional: 500,
			LongTraderCount: 1, ShortTraderCount: 1,
		}},
	}
}

func TestAppendBounded(t *testing.T) {
	const max = 3

	var history []models.Snapshot
	for ts := int64(1); ts <= max+5; ts++ {
		history = AppendBounded(history, snap(ts), max)
	}

	if len(history) != max {
		t.Fatalf("len = %d, want %d", len(history), max)
	}
	// Oldest entries evicted: 6,7,8 remain, oldest first.
	for i, wantTS := range []int64{6, 7, 8} {
		if history[i].TimestampMillis != wantTS {
			t.Fatalf("history[%d].ts = %d, want %d", i, history[i].TimestampMillis, wantTS)
		}
	}
}

func TestAppendBounded_DoesNotMutateInput(t *testing.T) {
	in := []models.Snapshot{snap(1), snap(2)}
	inCopy := []models.Snapshot{snap(1), snap(2)}

	out := AppendBounded(in, snap(3), 2)

	if !reflect.DeepEqual(in, inCopy) {
		t.Fatalf("input history mutated: %+v", in)
	}
	if len(out) != 2 || out[0].TimestampMillis != 2 || out[1].TimestampMillis != 3 {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestAppendBounded_NoCap(t *testing.T) {
	var history []models.Snapshot
	for ts := int64(1); ts <= 10; ts++ {
		history = AppendBounded(history, snap(ts), 0)
	}
	if len(history) != 10 {
		t.Fatalf("len = %d, want 10 with eviction disabled", len(history))
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")

	store := NewFileStore(path)
	if n := store.Load(); n != 0 {
		t.Fatalf("cold start restored %d snapshots", n)
	}

	want := []models.Snapshot{snap(1), snap(2), snap(3)}
	for _, sn := range want {
		if err := store.Append(sn, 10); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	// A fresh store over the same file must reproduce the exact history.
	reloaded := NewFileStore(path)
	if n := reloaded.Load(); n != len(want) {
		t.Fatalf("restored %d snapshots, want %d", n, len(want))
	}
	if got := reloaded.History(); !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestFileStore_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewFileStore(path)
	if n := store.Load(); n != 0 {
		t.Fatalf("restored %d from empty history", n)
	}
	if h := store.History(); h == nil || len(h) != 0 {
		t.Fatalf("history must be empty non-nil, got %#v", h)
	}
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{name: "garbage", content: "{not json"},
		{name: "truncated", content: `[{"timestampMillis":1`},
		{name: "null", content: "null"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "snapshots.json")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}

			store := NewFileStore(path)
			if n := store.Load(); n != 0 {
				t.Fatalf("restored %d from corrupt file", n)
			}
			if len(store.History()) != 0 {
				t.Fatalf("history not empty after corrupt load")
			}

			// The store must still accept appends after a corrupt load.
			if err := store.Append(snap(9), 5); err != nil {
				t.Fatalf("append after corrupt load: %v", err)
			}
		})
	}
}

func TestFileStore_AppendEvictsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	store := NewFileStore(path)
	store.Load()

	const max = 2
	for ts := int64(1); ts <= 5; ts++ {
		if err := store.Append(snap(ts), max); err != nil {
			t.Fatalf("append %d: %v", ts, err)
		}
	}

	history := store.History()
	if len(history) != max {
		t.Fatalf("len = %d, want %d", len(history), max)
	}
	if history[0].TimestampMillis != 4 || history[1].TimestampMillis != 5 {
		t.Fatalf("wrong survivors: %+v", history)
	}

	// No temp file may be left behind and the main file must parse fully.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind (err=%v)", err)
	}
	reloaded := NewFileStore(path)
	if n := reloaded.Load(); n != max {
		t.Fatalf("reload restored %d, want %d", n, max)
	}
}

func TestFileStore_AppendPersistFailureKeepsMemoryUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "snapshots.json") // parent dir missing

	store := NewFileStore(path)
	store.Load()

	if err := store.Append(snap(1), 10); err == nil {
		t.Fatalf("expected persist error for unwritable path")
	}
	if len(store.History()) != 0 {
		t.Fatalf("failed append leaked into memory: %+v", store.History())
	}
}

func TestFileStore_Latest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	store := NewFileStore(path)
	store.Load()

	if _, ok := store.Latest(); ok {
		t.Fatalf("latest on empty store should report none")
	}

	for ts := int64(1); ts <= 3; ts++ {
		if err := store.Append(snap(ts), 10); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	latest, ok := store.Latest()
	if !ok || latest.TimestampMillis != 3 {
		t.Fatalf("latest = %+v ok=%v, want ts=3", latest, ok)
	}
}

func TestFileStore_HistoryIsACopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	store := NewFileStore(path)
	store.Load()
	if err := store.Append(snap(1), 10); err != nil {
		t.Fatalf("append: %v", err)
	}

	h := store.History()
	h[0].TimestampMillis = 999

	if got := store.History(); got[0].TimestampMillis != 1 {
		t.Fatalf("reader mutation leaked into store: %+v", got)
	}
}

func TestFileStore_Count(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	store := NewFileStore(path)
	store.Load()

	if got := store.Count(); got != 0 {
		t.Fatalf("expected empty store, got %d", got)
	}
	for ts := int64(1); ts <= 3; ts++ {
		if err := store.Append(snap(ts), 10); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if got := store.Count(); got != 3 {
		t.Fatalf("expected 3 snapshots, got %d", got)
	}
}

func TestFileStore_Ping(t *testing.T) {
	dir := t.TempDir()
	ok := NewFileStore(filepath.Join(dir, "snapshots.json"))
	if err := ok.Ping(); err != nil {
		t.Fatalf("ping on existing dir: %v", err)
	}

	missing := NewFileStore(filepath.Join(dir, "nope", "snapshots.json"))
	if err := missing.Ping(); err == nil {
		t.Fatalf("ping should fail for missing storage dir")
	}
}
