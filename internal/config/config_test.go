package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-backtest/internal/backtest"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
backtest:
  initial_capital: 5000000
  commission_rate: 0.00015
  slippage_rate: 0.001
  liquidate_at_end: true
strategy:
  name: rsi
  params:
    oversold: 25
    overbought: 75
metrics:
  risk_free_rate: 0.02
  periods_per_year: 365
indicators:
  rsi_period: 10
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5_000_000.0, c.Backtest.InitialCapital)
	assert.Equal(t, 0.00015, c.Backtest.CommissionRate)
	assert.Equal(t, 0.001, c.Backtest.SlippageRate)
	assert.True(t, c.Backtest.LiquidateAtEnd)

	assert.Equal(t, "rsi", c.Strategy.Name)
	assert.Equal(t, 25, c.Strategy.Params["oversold"])

	assert.Equal(t, 0.02, c.Metrics.RiskFreeRate)
	assert.Equal(t, 365, c.Metrics.PeriodsPerYear)

	require.NotNil(t, c.Indicators)
	assert.Equal(t, 10, c.Indicators.RSIPeriod)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
strategy:
  name: ma
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10_000_000.0, c.Backtest.InitialCapital)
	assert.Equal(t, 252, c.Metrics.PeriodsPerYear)
	assert.Zero(t, c.Backtest.CommissionRate)
	assert.Nil(t, c.Indicators)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing strategy name", "backtest:\n  initial_capital: 1000\n"},
		{"negative capital", "backtest:\n  initial_capital: -5\nstrategy:\n  name: ma\n"},
		{"commission out of range", "backtest:\n  commission_rate: 1.5\nstrategy:\n  name: ma\n"},
		{"malformed yaml", "strategy: [unclosed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadUncheckedSkipsValidation(t *testing.T) {
	c, err := LoadUnchecked(writeConfig(t, "backtest:\n  initial_capital: -5\n"))
	require.NoError(t, err)
	assert.Equal(t, -5.0, c.Backtest.InitialCapital)
	assert.Empty(t, c.Strategy.Name)
}

func TestMergeBacktest(t *testing.T) {
	base := backtest.Config{InitialCapital: 1000, CommissionRate: 0.001, SlippageRate: 0.002}

	merged := MergeBacktest(base, backtest.Config{})
	assert.Equal(t, base, merged)

	merged = MergeBacktest(base, backtest.Config{InitialCapital: 2000, LiquidateAtEnd: true})
	assert.Equal(t, 2000.0, merged.InitialCapital)
	assert.Equal(t, 0.001, merged.CommissionRate)
	assert.Equal(t, 0.002, merged.SlippageRate)
	assert.True(t, merged.LiquidateAtEnd)
}

func TestMergeStrategy(t *testing.T) {
	base := StrategyConfig{Name: "ma", Params: map[string]any{"short_period": 5, "long_period": 20}}

	// Same-name override merges params key by key.
	merged := MergeStrategy(base, StrategyConfig{Params: map[string]any{"short_period": 10}})
	assert.Equal(t, "ma", merged.Name)
	assert.Equal(t, 10, merged.Params["short_period"])
	assert.Equal(t, 20, merged.Params["long_period"])

	// New name replaces the strategy wholesale.
	merged = MergeStrategy(base, StrategyConfig{Name: "rsi", Params: map[string]any{"oversold": 20}})
	assert.Equal(t, "rsi", merged.Name)
	assert.Equal(t, map[string]any{"oversold": 20}, merged.Params)
	assert.NotContains(t, merged.Params, "short_period")

	// Base params stay untouched.
	assert.Equal(t, 5, base.Params["short_period"])
}
