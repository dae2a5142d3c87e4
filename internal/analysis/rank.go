package analysis

import (
	"sort"

	"stock-backtest/internal/metrics"
)

// RankBy returns the results sorted descending by the chosen metric.
// Failed runs sort last. The input slice is not modified.
func RankBy(results []RunResult, metric string) []RunResult {
	out := make([]RunResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		if (out[i].Err == nil) != (out[j].Err == nil) {
			return out[i].Err == nil
		}
		return metricValue(out[i].Report, metric) > metricValue(out[j].Report, metric)
	})
	return out
}

func metricValue(r metrics.Report, name string) float64 {
	switch name {
	case "total_return":
		return r.TotalReturn
	case "cagr":
		return r.CAGR
	case "final_equity":
		return r.FinalEquity
	case "calmar_ratio":
		return r.CalmarRatio
	case "sortino_ratio":
		return r.SortinoRatio
	case "win_rate":
		return r.WinRate
	default: // "sharpe_ratio" and anything unrecognized
		return r.SharpeRatio
	}
}
