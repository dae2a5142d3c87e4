package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stock-backtest/internal/analysis"
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/config"
	"stock-backtest/internal/data"
	"stock-backtest/internal/indicators"
	"stock-backtest/internal/metrics"
	"stock-backtest/internal/model"
	"stock-backtest/internal/strategy"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backtest":
		cmdBacktest(os.Args[2:])
	case "compare":
		cmdCompare(os.Args[2:], false)
	case "rank":
		cmdCompare(os.Args[2:], true)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli backtest --data prices.csv --config examples/config.yaml --out-equity results/equity.csv --out-trades results/trades.csv")
	fmt.Println("  cli compare --data prices.csv --config examples/config.yaml --strategies rsi,macd,ma")
	fmt.Println("  cli rank --data prices.csv --config examples/config.yaml --strategies rsi,macd,ma --by sharpe_ratio")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - --data accepts .csv or .json series files")
	fmt.Println("  - compare runs each strategy over the same series; rank additionally sorts by a metric")
}

func cmdBacktest(args []string) {
	fs := flag.NewFlagSet("backtest", flag.ExitOnError)
	dataPath := fs.String("data", "prices.csv", "Path to OHLCV series (.csv or .json)")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outEquity := fs.String("out-equity", "", "Optional output CSV path for the equity curve")
	outTrades := fs.String("out-trades", "", "Optional output CSV path for the trade log")
	n := fs.Int("n", 0, "Optional: limit to first N bars (0=all)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	series := loadSeries(*dataPath, *n, cfg)

	strat, err := strategy.Build(cfg.Strategy.Name, cfg.Strategy.Params, series)
	if err != nil {
		panic(err)
	}

	engine := backtest.New()
	res, err := engine.Run(series, strat, cfg.Backtest)
	if err != nil {
		panic(err)
	}
	report := metrics.Compute(res, cfg.Metrics.RiskFreeRate, cfg.Metrics.PeriodsPerYear)

	fmt.Printf("Strategy=%s  Bars=%d  Trades=%d\n", strat.Name(), len(res.Equity), len(res.Trades))
	printReport(report)

	if *outEquity != "" {
		writeCSV(*outEquity, func(path string) error { return backtest.WriteEquityCSV(path, res.Equity) })
	}
	if *outTrades != "" {
		writeCSV(*outTrades, func(path string) error { return backtest.WriteTradesCSV(path, res.Trades) })
	}
}

func cmdCompare(args []string, ranked bool) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	dataPath := fs.String("data", "prices.csv", "Path to OHLCV series (.csv or .json)")
	cfgPath := fs.String("config", "", "Path to YAML config (base parameters)")
	names := fs.String("strategies", "rsi,macd,ma", "Comma-separated strategy names to compare")
	by := fs.String("by", "sharpe_ratio", "Metric to rank by (rank only)")
	n := fs.Int("n", 0, "Optional: limit to first N bars (0=all)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	series := loadSeries(*dataPath, *n, cfg)

	var variations []analysis.Variation
	for _, name := range strings.Split(*names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		variations = append(variations, analysis.Variation{
			Name:     name,
			Strategy: config.StrategyConfig{Name: name},
		})
	}

	results := analysis.Sweep(series, cfg, variations)
	if ranked {
		results = analysis.RankBy(results, *by)
	}

	fmt.Printf("%-4s %-14s %-10s %-10s %-8s %-8s %-8s %-8s\n",
		"rank", "strategy", "return", "maxdd", "sharpe", "calmar", "trades", "winrate")
	for i, r := range results {
		if r.Err != nil {
			fmt.Printf("%-4d %-14s error: %v\n", i+1, r.Name, r.Err)
			continue
		}
		fmt.Printf("%-4d %-14s %-10.4f %-10.4f %-8.3f %-8.3f %-8d %-8.3f\n",
			i+1,
			r.Name,
			r.Report.TotalReturn,
			r.Report.MaxDrawdown,
			r.Report.SharpeRatio,
			r.Report.CalmarRatio,
			r.Report.TotalTrades,
			r.Report.WinRate,
		)
	}
}

func loadSeries(path string, limit int, cfg *config.Config) model.PriceSeries {
	var series model.PriceSeries
	var err error
	if strings.HasSuffix(path, ".json") {
		series, err = data.LoadJSON(path)
	} else {
		series, err = data.LoadCSV(path)
	}
	if err != nil {
		panic(err)
	}
	if limit > 0 && limit < len(series) {
		series = series[:limit]
	}
	if cfg.Indicators != nil {
		series, err = indicators.Enrich(series, *cfg.Indicators)
		if err != nil {
			panic(err)
		}
	}
	return series
}

func writeCSV(path string, write func(string) error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		panic(err)
	}
	if err := write(path); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote CSV: %s\n", path)
}

func printReport(r metrics.Report) {
	fmt.Printf("  total_return=%.4f  cagr=%.4f  final_equity=%.2f\n",
		r.TotalReturn, r.CAGR, r.FinalEquity)
	fmt.Printf("  max_drawdown=%.4f (%d bars)  volatility=%.4f\n",
		r.MaxDrawdown, r.MaxDrawdownDuration, r.Volatility)
	fmt.Printf("  sharpe=%.3f  sortino=%.3f  calmar=%.3f\n",
		r.SharpeRatio, r.SortinoRatio, r.CalmarRatio)
	pf := fmt.Sprintf("%.3f", r.ProfitFactor)
	if r.ProfitFactor == metrics.ProfitFactorNoLosses {
		pf = "inf"
	}
	fmt.Printf("  trades=%d  win_rate=%.3f  profit_factor=%s  avg_win=%.2f  avg_loss=%.2f\n",
		r.TotalTrades, r.WinRate, pf, r.AvgWin, r.AvgLoss)
	fmt.Printf("  buy_and_hold_return=%.4f\n", r.BaselineTotalReturn)
}
