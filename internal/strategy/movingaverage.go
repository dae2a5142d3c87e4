package strategy

import (
	"fmt"

	ta "github.com/thrasher-corp/gct-ta/indicators"

	"stock-backtest/internal/model"
)

// MACrossStrategy trades the crossover of a short and a long simple moving
// average of the close. Precomputed "sma_<n>" columns are used when the
// series carries them; otherwise the lines are computed from the history
// prefix on each evaluation. Either way the strategy holds until LongPeriod
// bars of history exist, since neither line is defined before that.
type MACrossStrategy struct {
	ShortPeriod int
	LongPeriod  int
}

func NewMACross(shortPeriod, longPeriod int) (*MACrossStrategy, error) {
	if shortPeriod <= 0 || longPeriod <= 0 {
		return nil, &model.ConfigurationError{Field: "strategy.period", Reason: "periods must be > 0"}
	}
	if shortPeriod >= longPeriod {
		return nil, &model.ConfigurationError{Field: "strategy.short_period", Reason: "short period must be below long period"}
	}
	return &MACrossStrategy{ShortPeriod: shortPeriod, LongPeriod: longPeriod}, nil
}

func (s *MACrossStrategy) Name() string {
	return fmt.Sprintf("ma(%d/%d)", s.ShortPeriod, s.LongPeriod)
}

func (s *MACrossStrategy) Evaluate(history model.PriceSeries) model.Signal {
	// Both lines need LongPeriod bars, and the edge trigger needs the prior
	// bar's values too.
	if len(history) <= s.LongPeriod {
		return model.SignalHold
	}

	prevShort, curShort, okShort := s.linePair(history, s.ShortPeriod)
	prevLong, curLong, okLong := s.linePair(history, s.LongPeriod)
	if !okShort || !okLong {
		return model.SignalHold
	}

	if prevShort <= prevLong && curShort > curLong {
		return model.SignalBuy
	}
	if prevShort >= prevLong && curShort < curLong {
		return model.SignalSell
	}
	return model.SignalHold
}

func (s *MACrossStrategy) linePair(history model.PriceSeries, period int) (prev, cur float64, ok bool) {
	column := fmt.Sprintf("sma_%d", period)
	if prev, cur, ok = indicatorPair(history, column); ok {
		return prev, cur, true
	}
	vals := ta.SMA(history.Closes(), period)
	if len(vals) < 2 {
		return 0, 0, false
	}
	return vals[len(vals)-2], vals[len(vals)-1], true
}
