package model

import "time"

// Position is the single-instrument holding for one backtest run.
// Invariant: Shares == 0 iff Open == false. Only the backtest engine
// mutates it, and it is discarded when the run returns.
type Position struct {
	Open       bool
	Shares     int64
	EntryPrice float64 // execution price at entry, slippage included
	EntryTime  time.Time
}

// EnterLong records a fill of shares at the given execution price.
func (p *Position) EnterLong(shares int64, price float64, ts time.Time) {
	p.Open = true
	p.Shares = shares
	p.EntryPrice = price
	p.EntryTime = ts
}

// ExitLong flattens the position.
func (p *Position) ExitLong() {
	p.Open = false
	p.Shares = 0
	p.EntryPrice = 0
	p.EntryTime = time.Time{}
}
