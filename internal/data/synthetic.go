package data

import (
	"math"
	"math/rand"
	"time"

	"stock-backtest/internal/model"
)

// Synthetic generates a deterministic daily random-walk series: lognormal
// close-to-close steps with ~0.05% drift and ~1.5% volatility per bar.
// The same seed always produces the same series, which keeps demos and
// determinism tests reproducible.
func Synthetic(n int, startPrice float64, seed int64) model.PriceSeries {
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	series := make(model.PriceSeries, 0, n)
	prev := startPrice
	for i := 0; i < n; i++ {
		ret := 0.0005 + 0.015*rng.NormFloat64()
		close := prev * (1 + ret)
		if close < 0.01 {
			close = 0.01
		}
		open := prev
		high := math.Max(open, close) * (1 + 0.002*rng.Float64())
		low := math.Min(open, close) * (1 - 0.002*rng.Float64())
		series = append(series, model.PricePoint{
			Timestamp: start.AddDate(0, 0, i),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    float64(10_000 + rng.Intn(90_000)),
		})
		prev = close
	}
	return series
}
