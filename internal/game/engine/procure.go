package engine

import (
	"PowerLine/internal/game/resource"
	"PowerLine/internal/game/rules"
)

func (s State) buyResource(c BuyResource) (State, error) {
	if _, err := s.procurePhase(c.Player); err != nil {
		return s, err
	}
	kind, err := resource.ParseKind(string(c.Kind))
	if err != nil {
		return s, err
	}
	if c.Amount <= 0 {
		return s, rules.Violate(rules.ReasonInvalidAmount)
	}

	markets, cost, err := s.markets.Buy(kind, c.Amount)
	if err != nil {
		return s, err
	}
	acc, err := s.accounts[c.Player].Pay(cost)
	if err != nil {
		return s, err
	}
	acc, err = acc.AddResource(kind, c.Amount)
	if err != nil {
		return s, err
	}

	next := s.withAccount(c.Player, acc)
	next.markets = markets
	return next, nil
}

func (s State) passBuyResources(c PassBuyResources) (State, error) {
	ph, err := s.procurePhase(c.Player)
	if err != nil {
		return s, err
	}
	ph.Remaining = ph.Remaining[1:]
	if len(ph.Remaining) == 0 {
		return s.withPhase(BuildPhase{Remaining: reversed(s.order)}), nil
	}
	return s.withPhase(ph), nil
}
