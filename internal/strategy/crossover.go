package strategy

import (
	"stock-backtest/internal/model"
)

// LineCrossStrategy trades the crossing of two indicator columns: buy on
// the bar where the fast line moves from at-or-below to above the slow line
// (golden cross), sell on the reverse (dead cross).
type LineCrossStrategy struct {
	name       string
	FastColumn string
	SlowColumn string
}

func NewLineCross(name, fastColumn, slowColumn string) (*LineCrossStrategy, error) {
	if fastColumn == "" || slowColumn == "" {
		return nil, &model.ConfigurationError{Field: "strategy.columns", Reason: "fast and slow columns are required"}
	}
	if fastColumn == slowColumn {
		return nil, &model.ConfigurationError{Field: "strategy.columns", Reason: "fast and slow columns must differ"}
	}
	return &LineCrossStrategy{name: name, FastColumn: fastColumn, SlowColumn: slowColumn}, nil
}

// NewMACD builds the MACD/signal-line crossover over the "macd" and
// "macd_signal" columns.
func NewMACD() (*LineCrossStrategy, error) {
	return NewLineCross("macd", "macd", "macd_signal")
}

func (s *LineCrossStrategy) Name() string { return s.name }

func (s *LineCrossStrategy) Evaluate(history model.PriceSeries) model.Signal {
	prevFast, curFast, okFast := indicatorPair(history, s.FastColumn)
	prevSlow, curSlow, okSlow := indicatorPair(history, s.SlowColumn)
	if !okFast || !okSlow {
		return model.SignalHold
	}
	if prevFast <= prevSlow && curFast > curSlow {
		return model.SignalBuy
	}
	if prevFast >= prevSlow && curFast < curSlow {
		return model.SignalSell
	}
	return model.SignalHold
}
