// Package metrics derives risk and return statistics from a backtest
// result. Everything here is a pure function of its input: a report can be
// recomputed from the same result at any time.
package metrics

import (
	"math"
	"time"

	"stock-backtest/internal/backtest"
)

// ProfitFactorNoLosses is the sentinel reported when there is at least one
// winning trade and no losing trades. A finite sentinel keeps the report
// serializable as JSON.
const ProfitFactorNoLosses = math.MaxFloat64

// DefaultPeriodsPerYear is the trading-day annualization factor.
const DefaultPeriodsPerYear = 252

// Report is the derived statistics for one run. Ratios are guarded: any
// division whose denominator can be zero reports 0 instead of NaN or Inf.
type Report struct {
	TotalReturn float64 `json:"total_return"`
	CAGR        float64 `json:"cagr"`
	FinalEquity float64 `json:"final_equity"`

	MaxDrawdown         float64 `json:"max_drawdown"`
	MaxDrawdownDuration int     `json:"max_drawdown_duration"` // bars
	Volatility          float64 `json:"volatility"`

	SharpeRatio  float64 `json:"sharpe_ratio"`
	SortinoRatio float64 `json:"sortino_ratio"`
	CalmarRatio  float64 `json:"calmar_ratio"`

	TotalTrades      int     `json:"total_trades"`
	WinRate          float64 `json:"win_rate"`
	ProfitFactor     float64 `json:"profit_factor"`
	AvgWin           float64 `json:"avg_win"`
	AvgLoss          float64 `json:"avg_loss"`
	AvgTradeDuration float64 `json:"avg_trade_duration_days"`

	// BaselineTotalReturn is the cost-free buy-and-hold return over the
	// same series, a comparison anchor rather than a simulated strategy.
	BaselineTotalReturn float64 `json:"baseline_total_return"`
}

// Compute derives a report from a result. riskFree is an annual rate;
// periodsPerYear <= 0 falls back to DefaultPeriodsPerYear.
func Compute(res *backtest.Result, riskFree float64, periodsPerYear int) Report {
	var r Report
	if res == nil || len(res.Equity) == 0 {
		return r
	}
	if periodsPerYear <= 0 {
		periodsPerYear = DefaultPeriodsPerYear
	}

	curve := make([]float64, len(res.Equity))
	for i := range res.Equity {
		curve[i] = res.Equity[i].TotalEquity
	}
	first, last := curve[0], curve[len(curve)-1]
	r.FinalEquity = res.FinalEquity

	if first > 0 {
		r.TotalReturn = last/first - 1
		r.CAGR = math.Pow(last/first, float64(periodsPerYear)/float64(len(curve))) - 1
	}

	returns := periodReturns(curve)
	sd := stddev(returns)
	r.Volatility = sd * math.Sqrt(float64(periodsPerYear))

	excess := mean(returns) - riskFree/float64(periodsPerYear)
	if sd > 0 {
		r.SharpeRatio = excess / sd * math.Sqrt(float64(periodsPerYear))
	}
	if dd := downsideDev(returns); dd > 0 {
		r.SortinoRatio = excess / dd * math.Sqrt(float64(periodsPerYear))
	}

	r.MaxDrawdown, r.MaxDrawdownDuration = maxDrawdown(curve)
	if r.MaxDrawdown > 0 {
		r.CalmarRatio = r.CAGR / r.MaxDrawdown
	}

	fillTradeStats(&r, res.Trades)

	if n := len(res.Series); n > 0 && res.Series[0].Close > 0 {
		r.BaselineTotalReturn = res.Series[n-1].Close/res.Series[0].Close - 1
	}

	return r
}

func fillTradeStats(r *Report, trades []backtest.Trade) {
	r.TotalTrades = len(trades)
	if len(trades) == 0 {
		return
	}

	var wins, losses int
	var winSum, lossSum float64
	var held time.Duration
	for _, t := range trades {
		switch {
		case t.NetPnL > 0:
			wins++
			winSum += t.NetPnL
		case t.NetPnL < 0:
			losses++
			lossSum += t.NetPnL
		}
		held += t.ExitTime.Sub(t.EntryTime)
	}

	r.WinRate = float64(wins) / float64(len(trades))
	if wins > 0 {
		r.AvgWin = winSum / float64(wins)
	}
	if losses > 0 {
		r.AvgLoss = lossSum / float64(losses)
	}
	if losses > 0 {
		r.ProfitFactor = winSum / math.Abs(lossSum)
	} else if wins > 0 {
		r.ProfitFactor = ProfitFactorNoLosses
	}
	r.AvgTradeDuration = held.Hours() / 24 / float64(len(trades))
}

func periodReturns(curve []float64) []float64 {
	if len(curve) < 2 {
		return nil
	}
	out := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		if curve[i-1] == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, curve[i]/curve[i-1]-1)
	}
	return out
}

// maxDrawdown returns the deepest peak-to-trough decline as a non-negative
// fraction of the peak, and the longest run of bars spent below a prior
// peak.
func maxDrawdown(curve []float64) (float64, int) {
	var maxDD float64
	var maxDur, curDur int
	peak := math.Inf(-1)
	for _, v := range curve {
		if v >= peak {
			peak = v
			curDur = 0
			continue
		}
		curDur++
		if curDur > maxDur {
			maxDur = curDur
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD, maxDur
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the sample standard deviation (n-1 denominator).
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// downsideDev is the sample standard deviation of the negative returns
// only; 0 when fewer than two exist.
func downsideDev(xs []float64) float64 {
	var neg []float64
	for _, x := range xs {
		if x < 0 {
			neg = append(neg, x)
		}
	}
	return stddev(neg)
}
