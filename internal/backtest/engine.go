package backtest

import (
	"math"

	"stock-backtest/internal/model"
	"stock-backtest/internal/strategy"
)

// Config holds the execution parameters for one run. Commission applies to
// the notional on both entry and exit; slippage moves the fill price against
// the trade on both legs.
type Config struct {
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital"`
	CommissionRate float64 `yaml:"commission_rate" json:"commission_rate"`
	SlippageRate   float64 `yaml:"slippage_rate" json:"slippage_rate"`

	// LiquidateAtEnd forces a synthetic SELL at the final bar when the run
	// is still long, producing a closing Trade. Off by default: an open
	// position is still reflected in the final equity point mark-to-market.
	LiquidateAtEnd bool `yaml:"liquidate_at_end" json:"liquidate_at_end"`
}

func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return &model.ConfigurationError{Field: "initial_capital", Reason: "must be > 0"}
	}
	if c.CommissionRate < 0 || c.CommissionRate >= 1 {
		return &model.ConfigurationError{Field: "commission_rate", Reason: "must be in [0, 1)"}
	}
	if c.SlippageRate < 0 || c.SlippageRate >= 1 {
		return &model.ConfigurationError{Field: "slippage_rate", Reason: "must be in [0, 1)"}
	}
	return nil
}

// Engine replays a price series through a strategy, simulating a single
// long-or-flat position with transaction costs. One Engine value is
// stateless and safe to share; all per-run state lives in Run.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Run executes one backtest. The series is borrowed read-only; the
// position and cash ledger exist only for the duration of the call. Bars
// are processed strictly in order, the strategy sees only the prefix up to
// the current bar, and one equity point is emitted per bar using the
// post-transition state.
func (e *Engine) Run(series model.PriceSeries, strat strategy.Strategy, cfg Config) (*Result, error) {
	if strat == nil {
		return nil, &model.ConfigurationError{Field: "strategy", Reason: "strategy is nil"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, &model.DataIntegrityError{Index: 0, Reason: "series is empty"}
	}

	cash := cfg.InitialCapital
	var pos model.Position
	equity := make([]EquityPoint, 0, len(series))
	trades := []Trade{}

	exitLong := func(bar model.PricePoint) {
		execPrice := bar.Close * (1 - cfg.SlippageRate)
		proceeds := float64(pos.Shares) * execPrice * (1 - cfg.CommissionRate)
		entryCost := pos.EntryPrice * float64(pos.Shares) * (1 + cfg.CommissionRate)
		gross := (execPrice - pos.EntryPrice) * float64(pos.Shares)
		net := proceeds - entryCost
		trades = append(trades, Trade{
			EntryTime:      pos.EntryTime,
			EntryPrice:     pos.EntryPrice,
			ExitTime:       bar.Timestamp,
			ExitPrice:      execPrice,
			Shares:         pos.Shares,
			GrossPnL:       gross,
			CommissionPaid: gross - net,
			NetPnL:         net,
		})
		cash += proceeds
		pos.ExitLong()
	}

	for i := range series {
		if err := series.ValidateBar(i); err != nil {
			return nil, err
		}
		bar := series[i]

		sig := strat.Evaluate(series[:i+1])

		switch {
		case sig == model.SignalBuy && !pos.Open:
			execPrice := bar.Close * (1 + cfg.SlippageRate)
			shares := int64(math.Floor(cash / (execPrice * (1 + cfg.CommissionRate))))
			// Not enough cash for a single share: the signal is a no-op.
			if shares > 0 {
				cash -= float64(shares) * execPrice * (1 + cfg.CommissionRate)
				pos.EnterLong(shares, execPrice, bar.Timestamp)
			}

		case sig == model.SignalSell && pos.Open:
			exitLong(bar)

			// BUY while long and SELL while flat are no-ops: no pyramiding,
			// no shorting. HOLD never changes state.
		}

		holdings := float64(pos.Shares) * bar.Close
		equity = append(equity, EquityPoint{
			Timestamp:     bar.Timestamp,
			Cash:          cash,
			HoldingsValue: holdings,
			TotalEquity:   cash + holdings,
		})
	}

	// Liquidation runs after every signal has been applied, so a run that
	// goes long on the very last bar still closes. The final equity point
	// is restated flat.
	if cfg.LiquidateAtEnd && pos.Open {
		last := series[len(series)-1]
		exitLong(last)
		equity[len(equity)-1] = EquityPoint{
			Timestamp:   last.Timestamp,
			Cash:        cash,
			TotalEquity: cash,
		}
	}

	return &Result{
		Equity:         equity,
		Trades:         trades,
		FinalEquity:    equity[len(equity)-1].TotalEquity,
		InitialCapital: cfg.InitialCapital,
		CommissionRate: cfg.CommissionRate,
		SlippageRate:   cfg.SlippageRate,
		Series:         series,
	}, nil
}
