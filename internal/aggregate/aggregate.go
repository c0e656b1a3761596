// Package aggregate turns a batch of per-trader position fetch results into
// one ranked long/short exposure snapshot.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/hyperdash/monitor/internal/domain/models"
)

// assetTally accumulates one asset's exposure during a single pass.
// Notionals stay unrounded here; rounding happens only at finalization,
// otherwise large sums would drift by the accumulated rounding error.
type assetTally struct {
	longNotional  float64
	shortNotional float64
	longTraders   int
	shortTraders  int
}

// nowMillis is an indirection for the snapshot timestamp; tests can override it.
var nowMillis = func() int64 { return time.Now().UnixMilli() }

// BuildSnapshot folds a batch of trader results into a Snapshot.
//
// Behavior:
//   - Results with Err set are skipped entirely: they contribute nothing and
//     do not count toward TradersLoaded. One unreachable trader never
//     affects any other trader's contribution.
//   - Positions with zero notional are ignored (no open economic exposure).
//   - A position counts toward the long side when Size > 0, else short; its
//     absolute notional is added to that side's asset total and the matching
//     global total.
//   - Per-asset stats are finalized in the order assets were first seen,
//     then stable-sorted by total notional descending and truncated to
//     assetCap entries (non-positive cap disables truncation). Assets whose
//     combined notional is zero are dropped before finalization.
//   - Notionals are rounded to 2 decimal places and ratios to 4, only at
//     this finalization boundary.
//
// The returned Snapshot always has a non-nil Assets slice and a GlobalRatio
// of 0 when both sides are empty.
func BuildSnapshot(results []models.TraderResult, assetCap int) models.Snapshot {
	tallies := make(map[string]*assetTally)
	var order []string // asset symbols in first-seen order, for stable ranking

	var totalLong, totalShort float64
	loaded := 0

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		loaded++

		for _, pos := range res.Positions {
			if pos.Notional == 0 {
				continue
			}

			tally, ok := tallies[pos.Asset]
			if !ok {
				tally = &assetTally{}
				tallies[pos.Asset] = tally
				order = append(order, pos.Asset)
			}

			notional := math.Abs(pos.Notional)
			if pos.Size > 0 {
				tally.longNotional += notional
				tally.longTraders++
				totalLong += notional
			} else {
				tally.shortNotional += notional
				tally.shortTraders++
				totalShort += notional
			}
		}
	}

	assets := finalize(tallies, order, assetCap)

	total := totalLong + totalShort
	globalRatio := 0.0
	if total > 0 {
		globalRatio = Round(totalLong/total, 4)
	}

	return models.Snapshot{
		TimestampMillis:    nowMillis(),
		GlobalRatio:        globalRatio,
		TotalLongNotional:  Round(totalLong, 2),
		TotalShortNotional: Round(totalShort, 2),
		TradersLoaded:      loaded,
		Assets:             assets,
	}
}

// finalize converts tallies into rounded AssetStats, ranked by total
// notional descending. Ties keep discovery order (stable sort).
func finalize(tallies map[string]*assetTally, order []string, assetCap int) []models.AssetStats {
	assets := make([]models.AssetStats, 0, len(order))

	for _, symbol := range order {
		tally := tallies[symbol]
		total := tally.longNotional + tally.shortNotional
		if total == 0 {
			// Zero-notional positions were already excluded, so this can
			// only happen with degenerate input; drop rather than divide.
			continue
		}
		assets = append(assets, models.AssetStats{
			Asset:            symbol,
			Ratio:            Round(tally.longNotional/total, 4),
			TotalNotional:    Round(total, 2),
			LongNotional:     Round(tally.longNotional, 2),
			ShortNotional:    Round(tally.shortNotional, 2),
			LongTraderCount:  tally.longTraders,
			ShortTraderCount: tally.shortTraders,
		})
	}

	// Rank by total notional, largest first; the sort is stable so equal
	// totals keep their discovery order.
	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].TotalNotional > assets[j].TotalNotional
	})

	if assetCap > 0 && len(assets) > assetCap {
		assets = assets[:assetCap]
	}
	return assets
}

// Round rounds v to the given number of decimal places, halves away from zero.
func Round(v float64, places int) float64 {
	pow := math.Pow10(places)
	return math.Round(v*pow) / pow
}
