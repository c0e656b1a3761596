package models

// Position is one open perpetual position of a single trader, as reported
// by the exchange's clearinghouse state.
//
// Fields:
//   - Asset: coin symbol (e.g., "BTC").
//   - Size: signed position size; positive means long, negative means short.
//   - Notional: absolute USD value of the position. Positions with a zero
//     notional carry no economic exposure and are ignored by aggregation.
type Position struct {
	Asset    string
	Size     float64
	Notional float64
}

// TraderResult is the outcome of fetching one trader's open positions.
// A failed fetch is carried as a value (Err set) rather than aborting the
// batch, so a single unreachable trader never poisons a snapshot run.
type TraderResult struct {
	Address   string
	Positions []Position
	Err       error
}
