package models

import (
	"time"

	"stock-backtest/internal/backtest"
	"stock-backtest/internal/metrics"
)

// BacktestResponse represents the response from a backtest run.
type BacktestResponse struct {
	Status  string                 `json:"status"`
	Summary BacktestSummary        `json:"summary"`
	Equity  []backtest.EquityPoint `json:"equity,omitempty"`
	Trades  []backtest.Trade       `json:"trades,omitempty"`
}

// BacktestSummary is the full metrics report plus run bookkeeping.
type BacktestSummary struct {
	metrics.Report

	InitialCapital float64    `json:"initial_capital"`
	TotalBars      int        `json:"total_bars"`
	Window         TimeWindow `json:"window"`
	StrategyName   string     `json:"strategy_name"`
}

// TimeWindow represents a time range.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CompareResponse represents the response from a comparison.
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation. Error carries a
// per-variation failure without failing the whole comparison.
type ComparisonResult struct {
	Name    string          `json:"name"`
	Summary BacktestSummary `json:"summary,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// StrategyInfo represents information about a strategy.
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter.
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "float", "int", "bool", "string"
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
