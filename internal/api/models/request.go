package models

import (
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/config"
	"stock-backtest/internal/model"
)

// BacktestRequest represents the request body for running a backtest.
// The price series is supplied inline; the engine performs no data
// acquisition of its own.
type BacktestRequest struct {
	Series  []model.PricePoint `json:"series" binding:"required"`
	Config  RunConfig          `json:"config" binding:"required"`
	Options BacktestOptions    `json:"options,omitempty"`
}

// RunConfig mirrors the YAML config shape for API callers.
type RunConfig struct {
	Backtest backtest.Config       `json:"backtest"`
	Strategy config.StrategyConfig `json:"strategy" binding:"required"`
	Metrics  config.MetricsConfig  `json:"metrics,omitempty"`
}

// BacktestOptions contains optional request parameters.
type BacktestOptions struct {
	LimitBars     int  `json:"limit_bars,omitempty"`     // 0 = all
	IncludeEquity bool `json:"include_equity,omitempty"` // default: false
	IncludeTrades bool `json:"include_trades,omitempty"` // default: false
	Enrich        bool `json:"enrich,omitempty"`         // add default indicator columns
}

// CompareRequest runs several variations against the same series.
type CompareRequest struct {
	Series     []model.PricePoint `json:"series" binding:"required"`
	BaseConfig RunConfig          `json:"base_config" binding:"required"`
	Variations []VariationConfig  `json:"variations" binding:"required"`
	Options    BacktestOptions    `json:"options,omitempty"`

	// RankBy sorts the comparison by a report metric (e.g. "sharpe_ratio",
	// "total_return"). Empty keeps request order.
	RankBy string `json:"rank_by,omitempty"`
}

// VariationConfig overrides parts of the base config for one comparison
// entry.
type VariationConfig struct {
	Name     string                `json:"name" binding:"required"`
	Strategy config.StrategyConfig `json:"strategy,omitempty"`
	Backtest backtest.Config       `json:"backtest,omitempty"`
}
