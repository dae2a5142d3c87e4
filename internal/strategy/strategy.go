package strategy

import "stock-backtest/internal/model"

// Strategy maps a history prefix to a trading signal. The engine calls
// Evaluate once per bar with the series truncated to all bars up to and
// including the current one, so an implementation cannot see future bars.
type Strategy interface {
	Name() string
	Evaluate(history model.PriceSeries) model.Signal
}

// indicatorPair reads the named column at the previous and current bar.
// Both must be present; edge-triggered rules need the prior value to detect
// a crossing, so strategies hold until two consecutive bars carry the column.
func indicatorPair(history model.PriceSeries, name string) (prev, cur float64, ok bool) {
	if len(history) < 2 {
		return 0, 0, false
	}
	prev, okPrev := history[len(history)-2].Indicator(name)
	cur, okCur := history[len(history)-1].Indicator(name)
	if !okPrev || !okCur {
		return 0, 0, false
	}
	return prev, cur, true
}
