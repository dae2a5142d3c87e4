package main

import (
	"flag"
	"fmt"

	"stock-backtest/internal/backtest"
	"stock-backtest/internal/config"
	"stock-backtest/internal/data"
	"stock-backtest/internal/indicators"
	"stock-backtest/internal/metrics"
	"stock-backtest/internal/strategy"
)

// Demo:
// - Generate a synthetic daily random-walk series
// - Enrich it with the default indicator columns
// - Run a dual moving average strategy end to end and print the report
func main() {
	n := flag.Int("n", 252, "Number of bars to simulate")
	seed := flag.Int64("seed", 42, "Random walk seed")
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	outEquity := flag.String("out", "", "Optional path to write the equity curve CSV")
	flag.Parse()

	series := data.Synthetic(*n, 100, *seed)

	// Defaults (can be overridden via --config).
	btCfg := backtest.Config{
		InitialCapital: 10_000_000,
		CommissionRate: 0.00015,
		SlippageRate:   0.001,
	}
	stratCfg := config.StrategyConfig{
		Name:   "ma",
		Params: map[string]any{"short_period": 10, "long_period": 30},
	}
	riskFree := 0.0
	periods := metrics.DefaultPeriodsPerYear

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		btCfg = cfg.Backtest
		stratCfg = cfg.Strategy
		riskFree = cfg.Metrics.RiskFreeRate
		periods = cfg.Metrics.PeriodsPerYear
	}

	series, err := indicators.Enrich(series, indicators.DefaultConfig())
	if err != nil {
		panic(err)
	}

	strat, err := strategy.Build(stratCfg.Name, stratCfg.Params, series)
	if err != nil {
		panic(err)
	}

	engine := backtest.New()
	result, err := engine.Run(series, strat, btCfg)
	if err != nil {
		panic(err)
	}
	report := metrics.Compute(result, riskFree, periods)

	fmt.Printf("Simulated %d bars (%s to %s)\n",
		len(series),
		series[0].Timestamp.Format("2006-01-02"),
		series[len(series)-1].Timestamp.Format("2006-01-02"),
	)
	fmt.Printf("Strategy=%s\n\n", strat.Name())

	for _, t := range result.Trades {
		fmt.Printf(
			"%s -> %s  shares=%d  entry=%8.3f  exit=%8.3f  net=%12.2f\n",
			t.EntryTime.Format("2006-01-02"),
			t.ExitTime.Format("2006-01-02"),
			t.Shares,
			t.EntryPrice,
			t.ExitPrice,
			t.NetPnL,
		)
	}

	fmt.Printf("\nFinal equity=%.2f (started %.2f)\n", result.FinalEquity, result.InitialCapital)
	fmt.Printf("Strategy return=%.4f  Buy&Hold return=%.4f\n", report.TotalReturn, report.BaselineTotalReturn)
	fmt.Printf("Sharpe=%.3f  MaxDD=%.4f  Trades=%d  WinRate=%.3f\n",
		report.SharpeRatio, report.MaxDrawdown, report.TotalTrades, report.WinRate)

	if *outEquity != "" {
		if err := backtest.WriteEquityCSV(*outEquity, result.Equity); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outEquity)
	}
}
