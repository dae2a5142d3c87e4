package strategy

import (
	"stock-backtest/internal/model"
)

// SignalFunc is a caller-supplied scoring function with the same contract
// as Strategy.Evaluate.
type SignalFunc func(history model.PriceSeries) model.Signal

// CustomStrategy adapts an injected function to the Strategy interface.
type CustomStrategy struct {
	name string
	fn   SignalFunc
}

func NewCustom(name string, fn SignalFunc) (*CustomStrategy, error) {
	if fn == nil {
		return nil, &model.ConfigurationError{Field: "strategy.func", Reason: "signal function is required"}
	}
	if name == "" {
		name = "custom"
	}
	return &CustomStrategy{name: name, fn: fn}, nil
}

func (s *CustomStrategy) Name() string { return s.name }

func (s *CustomStrategy) Evaluate(history model.PriceSeries) model.Signal {
	return s.fn(history)
}
