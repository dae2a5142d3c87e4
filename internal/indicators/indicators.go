// Package indicators enriches a price series with the per-bar technical
// indicator columns the trading strategies consume. The engine itself never
// computes indicators; enrichment is a caller-side step before a backtest.
package indicators

import (
	"fmt"

	ta "github.com/thrasher-corp/gct-ta/indicators"

	"stock-backtest/internal/model"
)

// Config selects which columns Enrich adds and their lookback periods.
type Config struct {
	RSIPeriod  int     `yaml:"rsi_period" json:"rsi_period"`
	MACDFast   int     `yaml:"macd_fast" json:"macd_fast"`
	MACDSlow   int     `yaml:"macd_slow" json:"macd_slow"`
	MACDSignal int     `yaml:"macd_signal" json:"macd_signal"`
	SMAPeriods []int   `yaml:"sma_periods" json:"sma_periods"`
	EMAPeriods []int   `yaml:"ema_periods" json:"ema_periods"`
	BBPeriod   int     `yaml:"bb_period" json:"bb_period"`
	BBStdDev   float64 `yaml:"bb_std_dev" json:"bb_std_dev"`
}

// DefaultConfig mirrors the conventional parameterizations: RSI(14),
// MACD(12,26,9), SMA 20/60, Bollinger 20/2.
func DefaultConfig() Config {
	return Config{
		RSIPeriod:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		SMAPeriods: []int{20, 60},
		BBPeriod:   20,
		BBStdDev:   2,
	}
}

// Enrich returns a copy of the series with indicator columns attached:
// "rsi", "macd", "macd_signal", "sma_<n>", "ema_<n>", "bb_upper",
// "bb_middle", "bb_lower". Bars inside an indicator's lookback window are
// left without that column, so strategies hold until the window fills.
// The input series is not mutated.
func Enrich(series model.PriceSeries, cfg Config) (model.PriceSeries, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	out := make(model.PriceSeries, len(series))
	copy(out, series)
	for i := range out {
		m := make(map[string]float64, len(series[i].Indicators)+8)
		for k, v := range series[i].Indicators {
			m[k] = v
		}
		out[i].Indicators = m
	}

	closes := series.Closes()
	n := len(closes)

	if cfg.RSIPeriod > 0 && n > cfg.RSIPeriod {
		overlay(out, "rsi", ta.RSI(closes, cfg.RSIPeriod), cfg.RSIPeriod)
	}
	if cfg.MACDFast > 0 && cfg.MACDSlow > 0 && cfg.MACDSignal > 0 {
		if min := cfg.MACDSlow + cfg.MACDSignal - 2; n > min {
			macd, signal, _ := ta.MACD(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
			overlay(out, "macd", macd, min)
			overlay(out, "macd_signal", signal, min)
		}
	}
	for _, p := range cfg.SMAPeriods {
		if p > 0 && n >= p {
			overlay(out, fmt.Sprintf("sma_%d", p), ta.SMA(closes, p), p-1)
		}
	}
	for _, p := range cfg.EMAPeriods {
		if p > 0 && n >= p {
			overlay(out, fmt.Sprintf("ema_%d", p), ta.EMA(closes, p), p-1)
		}
	}
	if cfg.BBPeriod > 0 && cfg.BBStdDev > 0 && n >= cfg.BBPeriod {
		upper, middle, lower := ta.BBANDS(closes, cfg.BBPeriod, cfg.BBStdDev, cfg.BBStdDev, ta.Sma)
		overlay(out, "bb_upper", upper, cfg.BBPeriod-1)
		overlay(out, "bb_middle", middle, cfg.BBPeriod-1)
		overlay(out, "bb_lower", lower, cfg.BBPeriod-1)
	}

	return out, nil
}

func (c Config) validate() error {
	check := func(field string, v int) error {
		if v < 0 {
			return &model.ConfigurationError{Field: "indicators." + field, Reason: "must be >= 0"}
		}
		return nil
	}
	if err := check("rsi_period", c.RSIPeriod); err != nil {
		return err
	}
	for _, pair := range []struct {
		name string
		v    int
	}{{"macd_fast", c.MACDFast}, {"macd_slow", c.MACDSlow}, {"macd_signal", c.MACDSignal}, {"bb_period", c.BBPeriod}} {
		if err := check(pair.name, pair.v); err != nil {
			return err
		}
	}
	for _, p := range append(append([]int{}, c.SMAPeriods...), c.EMAPeriods...) {
		if p <= 0 {
			return &model.ConfigurationError{Field: "indicators.periods", Reason: "moving average periods must be > 0"}
		}
	}
	return nil
}

// overlay writes computed values onto the series, aligning the output slice
// to the tail of the input (the last output value always belongs to the last
// bar) and skipping bars before the lookback window is satisfied.
func overlay(series model.PriceSeries, name string, vals []float64, minIdx int) {
	offset := len(series) - len(vals)
	for i := minIdx; i < len(series); i++ {
		j := i - offset
		if j < 0 || j >= len(vals) {
			continue
		}
		series[i].Indicators[name] = vals[j]
	}
}
