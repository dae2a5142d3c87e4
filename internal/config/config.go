package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"stock-backtest/internal/backtest"
	"stock-backtest/internal/indicators"
	"stock-backtest/internal/metrics"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Backtest backtest.Config `yaml:"backtest"`
	Strategy StrategyConfig  `yaml:"strategy"`
	Metrics  MetricsConfig   `yaml:"metrics"`

	// Indicators, when present, enriches the loaded series before the
	// strategy is built. Omitting the section leaves the series as loaded.
	Indicators *indicators.Config `yaml:"indicators,omitempty"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name" json:"name"`
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

type MetricsConfig struct {
	RiskFreeRate   float64 `yaml:"risk_free_rate" json:"risk_free_rate"`
	PeriodsPerYear int     `yaml:"periods_per_year" json:"periods_per_year"`
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads config without defaulting or validating it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ApplyDefaults fills unset fields: capital defaults to 10,000,000 and the
// annualization factor to 252 trading days. Commission and slippage default
// to zero, which is valid, so they are left alone.
func (c *Config) ApplyDefaults() {
	if c.Backtest.InitialCapital == 0 {
		c.Backtest.InitialCapital = 10_000_000
	}
	if c.Metrics.PeriodsPerYear == 0 {
		c.Metrics.PeriodsPerYear = metrics.DefaultPeriodsPerYear
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Strategy.Name == "" {
		return errors.New("strategy.name is required")
	}
	if err := c.Backtest.Validate(); err != nil {
		return err
	}
	if c.Metrics.PeriodsPerYear <= 0 {
		return errors.New("metrics.periods_per_year must be > 0")
	}
	return nil
}

// MergeBacktest overlays non-zero fields from override onto base.
// Used when a comparison variation adjusts only some execution parameters.
// Note: a variation cannot set a rate back to exactly 0 this way; zero
// means "inherit".
func MergeBacktest(base, override backtest.Config) backtest.Config {
	out := base
	if override.InitialCapital != 0 {
		out.InitialCapital = override.InitialCapital
	}
	if override.CommissionRate != 0 {
		out.CommissionRate = override.CommissionRate
	}
	if override.SlippageRate != 0 {
		out.SlippageRate = override.SlippageRate
	}
	if override.LiquidateAtEnd {
		out.LiquidateAtEnd = true
	}
	return out
}

// MergeStrategy overlays a variation's strategy config onto a base: a new
// name replaces the strategy outright, otherwise params are overlaid
// key-by-key.
func MergeStrategy(base, override StrategyConfig) StrategyConfig {
	if override.Name != "" && override.Name != base.Name {
		return override
	}
	out := StrategyConfig{Name: base.Name, Params: map[string]any{}}
	for k, v := range base.Params {
		out.Params[k] = v
	}
	for k, v := range override.Params {
		out.Params[k] = v
	}
	return out
}
