// Package analysis runs batches of independent backtests: strategy
// comparisons and parameter sweeps, plus ranking of the outcomes.
package analysis

import (
	"sync"

	"stock-backtest/internal/backtest"
	"stock-backtest/internal/config"
	"stock-backtest/internal/metrics"
	"stock-backtest/internal/model"
	"stock-backtest/internal/strategy"
)

// Variation is one candidate in a sweep: a name plus overrides onto the
// base config. Zero-valued backtest fields inherit from the base.
type Variation struct {
	Name     string
	Strategy config.StrategyConfig
	Backtest backtest.Config
}

// RunResult is the outcome of one variation.
type RunResult struct {
	Name   string
	Result *backtest.Result
	Report metrics.Report
	Err    error
}

// Sweep runs every variation against the same series. Each run owns its
// position, ledger and result, so runs are dispatched across goroutines;
// the series is only ever read. Output order matches the input order
// regardless of scheduling.
func Sweep(series model.PriceSeries, base *config.Config, variations []Variation) []RunResult {
	out := make([]RunResult, len(variations))

	var wg sync.WaitGroup
	for i := range variations {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i] = runOne(series, base, variations[i])
		}(i)
	}
	wg.Wait()

	return out
}

func runOne(series model.PriceSeries, base *config.Config, v Variation) RunResult {
	res := RunResult{Name: v.Name}

	stratCfg := config.MergeStrategy(base.Strategy, v.Strategy)
	btCfg := config.MergeBacktest(base.Backtest, v.Backtest)

	strat, err := strategy.Build(stratCfg.Name, stratCfg.Params, series)
	if err != nil {
		res.Err = err
		return res
	}

	result, err := backtest.New().Run(series, strat, btCfg)
	if err != nil {
		res.Err = err
		return res
	}

	res.Result = result
	res.Report = metrics.Compute(result, base.Metrics.RiskFreeRate, base.Metrics.PeriodsPerYear)
	return res
}
