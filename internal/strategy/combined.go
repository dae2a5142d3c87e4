package strategy

import (
	"stock-backtest/internal/model"
)

// VotingStrategy wraps N sub-strategies and emits a signal only when at
// least Quorum of them agree on it. Disagreement (including both sides
// reaching quorum at once) resolves to HOLD; the ensemble never forces a
// trade.
type VotingStrategy struct {
	Subs   []Strategy
	Quorum int
}

// NewVoting builds a voting ensemble. quorum == 0 means unanimous.
func NewVoting(quorum int, subs ...Strategy) (*VotingStrategy, error) {
	if len(subs) == 0 {
		return nil, &model.ConfigurationError{Field: "strategy.strategies", Reason: "at least one sub-strategy is required"}
	}
	if quorum < 0 || quorum > len(subs) {
		return nil, &model.ConfigurationError{Field: "strategy.quorum", Reason: "quorum must be in [0, number of sub-strategies]"}
	}
	if quorum == 0 {
		quorum = len(subs)
	}
	return &VotingStrategy{Subs: subs, Quorum: quorum}, nil
}

func (s *VotingStrategy) Name() string { return "combined" }

func (s *VotingStrategy) Evaluate(history model.PriceSeries) model.Signal {
	var buys, sells int
	for _, sub := range s.Subs {
		switch sub.Evaluate(history) {
		case model.SignalBuy:
			buys++
		case model.SignalSell:
			sells++
		}
	}
	buyOK := buys >= s.Quorum
	sellOK := sells >= s.Quorum
	switch {
	case buyOK && !sellOK:
		return model.SignalBuy
	case sellOK && !buyOK:
		return model.SignalSell
	default:
		return model.SignalHold
	}
}
