package strategy

import (
	"stock-backtest/internal/model"
)

// ThresholdStrategy trades an oscillator column against fixed bands:
// buy on the bar where the value crosses below the oversold band, sell on
// the bar where it crosses above the overbought band. The trigger fires
// once per crossing, never while the value merely stays inside a band, so
// a long run of oversold bars produces a single BUY.
type ThresholdStrategy struct {
	Column     string
	Oversold   float64
	Overbought float64
}

// NewThreshold builds a threshold strategy over an arbitrary oscillator
// column.
func NewThreshold(column string, oversold, overbought float64) (*ThresholdStrategy, error) {
	if column == "" {
		return nil, &model.ConfigurationError{Field: "strategy.column", Reason: "oscillator column is required"}
	}
	if oversold >= overbought {
		return nil, &model.ConfigurationError{Field: "strategy.oversold", Reason: "oversold must be below overbought"}
	}
	return &ThresholdStrategy{Column: column, Oversold: oversold, Overbought: overbought}, nil
}

// NewRSI builds the conventional RSI band strategy over the "rsi" column.
func NewRSI(oversold, overbought float64) (*ThresholdStrategy, error) {
	return NewThreshold("rsi", oversold, overbought)
}

func (s *ThresholdStrategy) Name() string { return s.Column }

func (s *ThresholdStrategy) Evaluate(history model.PriceSeries) model.Signal {
	prev, cur, ok := indicatorPair(history, s.Column)
	if !ok {
		return model.SignalHold
	}
	if cur < s.Oversold && prev >= s.Oversold {
		return model.SignalBuy
	}
	if cur > s.Overbought && prev <= s.Overbought {
		return model.SignalSell
	}
	return model.SignalHold
}
