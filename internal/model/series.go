package model

import (
	"math"
	"time"
)

// PricePoint represents one bar of OHLCV data, plus any indicator values
// computed for that bar (e.g. "rsi", "macd", "sma_20"). All timestamps are
// RFC3339 strings in the JSON shape.
//
// Example:
//
//	{
//	  "timestamp": "2024-01-02T00:00:00Z",
//	  "open": 100, "high": 102, "low": 99, "close": 101, "volume": 12000,
//	  "indicators": {"rsi": 54.2}
//	}
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`

	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`

	// Indicators holds named per-bar values supplied by the caller.
	// Absent keys mean the indicator has no value yet at this bar
	// (lookback window not satisfied).
	Indicators map[string]float64 `json:"indicators,omitempty"`
}

// Indicator returns the named indicator value for this bar.
func (p PricePoint) Indicator(name string) (float64, bool) {
	if p.Indicators == nil {
		return 0, false
	}
	v, ok := p.Indicators[name]
	return v, ok
}

// PriceSeries is an ordered sequence of bars, strictly increasing by
// timestamp. It is treated as read-only by every component in this module;
// callers may share one series across concurrent backtest runs.
type PriceSeries []PricePoint

// Closes extracts the close column.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Close
	}
	return out
}

// HasIndicator reports whether any bar in the series carries the named
// indicator. Indicators with a lookback window only appear on later bars,
// so presence on any bar counts.
func (s PriceSeries) HasIndicator(name string) bool {
	for i := range s {
		if _, ok := s[i].Indicator(name); ok {
			return true
		}
	}
	return false
}

// IndexOf returns the index of the bar with the given timestamp, or -1.
func (s PriceSeries) IndexOf(ts time.Time) int {
	for i := range s {
		if s[i].Timestamp.Equal(ts) {
			return i
		}
	}
	return -1
}

// Validate scans the series in order and returns a *DataIntegrityError for
// the first malformed bar: non-monotonic or duplicate timestamps, NaN or
// non-positive prices. An empty series is also an error. Bad bars are never
// skipped or interpolated.
func (s PriceSeries) Validate() error {
	if len(s) == 0 {
		return &DataIntegrityError{Index: 0, Reason: "series is empty"}
	}
	for i := range s {
		if err := s.ValidateBar(i); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBar checks a single bar (and its ordering against the previous
// bar). The engine calls this as each bar is reached so a run fails fast at
// the offending index.
func (s PriceSeries) ValidateBar(i int) error {
	p := s[i]
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"open", p.Open},
		{"high", p.High},
		{"low", p.Low},
		{"close", p.Close},
	} {
		if math.IsNaN(f.value) {
			return &DataIntegrityError{Index: i, Reason: f.name + " is NaN"}
		}
		if f.value <= 0 {
			return &DataIntegrityError{Index: i, Reason: f.name + " must be > 0"}
		}
	}
	if math.IsNaN(p.Volume) || p.Volume < 0 {
		return &DataIntegrityError{Index: i, Reason: "volume must be >= 0"}
	}
	if i > 0 && !s[i].Timestamp.After(s[i-1].Timestamp) {
		return &DataIntegrityError{Index: i, Reason: "timestamp not after previous bar"}
	}
	return nil
}
