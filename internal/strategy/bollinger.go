package strategy

import (
	"stock-backtest/internal/model"
)

// BollingerStrategy trades the close against precomputed Bollinger bands:
// buy on the bar where the close rebounds up through the lower band after
// closing below it, sell on the bar where the close reaches the upper band
// from below.
type BollingerStrategy struct {
	LowerColumn string
	UpperColumn string
}

func NewBollinger() *BollingerStrategy {
	return &BollingerStrategy{LowerColumn: "bb_lower", UpperColumn: "bb_upper"}
}

func (s *BollingerStrategy) Name() string { return "bollinger" }

func (s *BollingerStrategy) Evaluate(history model.PriceSeries) model.Signal {
	if len(history) < 2 {
		return model.SignalHold
	}
	prevLower, curLower, okLower := indicatorPair(history, s.LowerColumn)
	prevUpper, curUpper, okUpper := indicatorPair(history, s.UpperColumn)
	if !okLower || !okUpper {
		return model.SignalHold
	}
	prevClose := history[len(history)-2].Close
	curClose := history[len(history)-1].Close

	if prevClose < prevLower && curClose >= curLower {
		return model.SignalBuy
	}
	if prevClose < prevUpper && curClose >= curUpper {
		return model.SignalSell
	}
	return model.SignalHold
}
