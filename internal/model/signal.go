package model

// Signal is a strategy's decision for one bar.
// Keep these values stable; they are intended for CSV/JSON output.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)
