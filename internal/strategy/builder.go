package strategy

import (
	"fmt"

	"stock-backtest/internal/model"
)

// Build constructs a strategy by name from loosely typed config params
// (YAML or JSON). The series is probed for every indicator column the
// chosen strategy reads, so a missing column is a construction-time
// *model.ConfigurationError rather than a mid-simulation surprise.
//
// Recognized names: "rsi", "macd", "ma", "bollinger", "combined".
// Custom strategies are injected programmatically via NewCustom.
func Build(name string, params map[string]any, series model.PriceSeries) (Strategy, error) {
	switch name {
	case "rsi":
		column := strParam(params, "column", "rsi")
		oversold := numParam(params, "oversold", 30)
		overbought := numParam(params, "overbought", 70)
		s, err := NewThreshold(column, oversold, overbought)
		if err != nil {
			return nil, err
		}
		if err := requireColumns(series, column); err != nil {
			return nil, err
		}
		return s, nil

	case "macd":
		s, err := NewMACD()
		if err != nil {
			return nil, err
		}
		if err := requireColumns(series, s.FastColumn, s.SlowColumn); err != nil {
			return nil, err
		}
		return s, nil

	case "ma":
		short := int(numParam(params, "short_period", 20))
		long := int(numParam(params, "long_period", 60))
		return NewMACross(short, long)

	case "bollinger":
		s := NewBollinger()
		if err := requireColumns(series, s.LowerColumn, s.UpperColumn); err != nil {
			return nil, err
		}
		return s, nil

	case "combined":
		var subs []Strategy
		if boolParam(params, "use_rsi", true) {
			sub, err := Build("rsi", params, series)
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
		if boolParam(params, "use_macd", true) {
			sub, err := Build("macd", params, series)
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
		if boolParam(params, "use_bollinger", false) {
			sub, err := Build("bollinger", params, series)
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
		quorum := int(numParam(params, "quorum", 0))
		return NewVoting(quorum, subs...)

	default:
		return nil, &model.ConfigurationError{Field: "strategy.name", Reason: fmt.Sprintf("unsupported strategy %q", name)}
	}
}

func requireColumns(series model.PriceSeries, columns ...string) error {
	for _, col := range columns {
		if !series.HasIndicator(col) {
			return &model.ConfigurationError{
				Field:  "series.indicators",
				Reason: fmt.Sprintf("required indicator column %q is missing; enrich the series first", col),
			}
		}
	}
	return nil
}

func numParam(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case float32:
			return float64(x)
		case int:
			return float64(x)
		case int64:
			return float64(x)
		}
	}
	return def
}

func strParam(m map[string]any, key, def string) string {
	if v, ok := m[key]; ok && v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}

func boolParam(m map[string]any, key string, def bool) bool {
	if v, ok := m[key]; ok && v != nil {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}
