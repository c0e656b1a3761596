package models

// AssetStats is the finalized long/short summary for one asset inside a
// Snapshot. Notionals are rounded to 2 decimal places and the ratio to 4 at
// finalization time; raw accumulation happens unrounded.
//
// Ratio is longNotional / (longNotional + shortNotional), in (0..1]. Assets
// whose combined notional is zero are dropped before finalization, so the
// division is always defined here.
type AssetStats struct {
	Asset            string  `json:"asset" example:"BTC"`
	Ratio            float64 `json:"ratio" example:"0.6667"`
	TotalNotional    float64 `json:"totalNotional" example:"1500"`
	LongNotional     float64 `json:"longNotional" example:"1000"`
	ShortNotional    float64 `json:"shortNotional" example:"500"`
	LongTraderCount  int     `json:"longTraderCount" example:"1"`
	ShortTraderCount int     `json:"shortTraderCount" example:"1"`
}

// Snapshot is one aggregation pass over the top traders' open positions:
// global long/short totals plus per-asset stats ranked by total notional
// (descending, capped). It is both the API response shape and the persisted
// on-disk shape, so the JSON field names are the storage contract.
//
// Assets is never nil; an empty snapshot marshals its assets as [].
// GlobalRatio is 0 (not NaN) when both totals are zero.
//
// swagger:model Snapshot
type Snapshot struct {
	TimestampMillis    int64        `json:"timestampMillis" example:"1756080000000"`
	GlobalRatio        float64      `json:"globalRatio" example:"0.6667"`
	TotalLongNotional  float64      `json:"totalLongNotional" example:"1000"`
	TotalShortNotional float64      `json:"totalShortNotional" example:"500"`
	TradersLoaded      int          `json:"tradersLoaded" example:"100"`
	Assets             []AssetStats `json:"assets"`
}
