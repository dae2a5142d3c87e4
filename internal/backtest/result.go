package backtest

import (
	"time"

	"stock-backtest/internal/model"
)

// EquityPoint is one row of per-bar output: the portfolio mark-to-market
// after the bar's transition has been applied. Exactly one point is emitted
// per bar, whether or not a trade occurred.
// Invariant: TotalEquity == Cash + HoldingsValue at every point.
type EquityPoint struct {
	Timestamp     time.Time `json:"timestamp"`
	Cash          float64   `json:"cash"`
	HoldingsValue float64   `json:"holdings_value"`
	TotalEquity   float64   `json:"total_equity"`
}

// Trade records one completed long round trip. Prices are execution prices
// with slippage applied; NetPnL nets out commission on both legs.
type Trade struct {
	EntryTime      time.Time `json:"entry_time"`
	EntryPrice     float64   `json:"entry_price"`
	ExitTime       time.Time `json:"exit_time"`
	ExitPrice      float64   `json:"exit_price"`
	Shares         int64     `json:"shares"`
	GrossPnL       float64   `json:"gross_pnl"`
	CommissionPaid float64   `json:"commission_paid"`
	NetPnL         float64   `json:"net_pnl"`
}

// Result is the complete artifact of one backtest run. It is a value
// object: the engine never touches it again after returning it.
type Result struct {
	Equity []EquityPoint `json:"equity"`
	Trades []Trade       `json:"trades"`

	FinalEquity    float64 `json:"final_equity"`
	InitialCapital float64 `json:"initial_capital"`
	CommissionRate float64 `json:"commission_rate"`
	SlippageRate   float64 `json:"slippage_rate"`

	// Series is the input the run was produced from, kept (read-only) so
	// metrics can compute the buy-and-hold baseline over the same bars.
	Series model.PriceSeries `json:"-"`
}
