package engine

import (
	"slices"

	"PowerLine/internal/game/account"
	"PowerLine/internal/game/asset"
	"PowerLine/internal/game/resource"
	"PowerLine/internal/game/rules"
)

// startSettle 进入结算：能发电且接入了城市的玩家是生产者，其余玩家直接拿最低收入。
func (s State) startSettle() (State, error) {
	next := s
	var producers []PlayerID
	for _, id := range s.order {
		acc := s.accounts[id]
		if s.ConnectedCount(id) > 0 && acc.BestAchievableOutput() > 0 {
			producers = append(producers, id)
			continue
		}
		earned, err := acc.Earn(Payment(0))
		if err != nil {
			return s, err
		}
		next = next.withAccount(id, earned)
	}
	if len(producers) == 0 {
		return next.finishSettle(), nil
	}
	return next.withPhase(SettlePhase{Producers: producers}), nil
}

// settleOutput 开动选定的电厂、烧掉资源，按实际供电城市数领取收入。
func (s State) settleOutput(c SettleOutput) (State, error) {
	ph, ok := s.phase.(SettlePhase)
	if !ok {
		return s, expectPhase(PhaseSettle)
	}
	if !slices.Contains(ph.Producers, c.Player) {
		return s, rules.IllegalState("settlement pending for " + string(c.Player))
	}

	acc := s.accounts[c.Player]
	running := make([]asset.Asset, 0, len(c.Assets))
	for _, price := range c.Assets {
		if asset.IndexOf(running, price) >= 0 {
			return s, rules.Violate(rules.ReasonInvalidCommand, "duplicate asset")
		}
		a, err := acc.Asset(price)
		if err != nil {
			return s, err
		}
		running = append(running, a)
	}
	burn := make(map[resource.Kind]int, len(c.Resources))
	for raw, n := range c.Resources {
		kind, err := resource.ParseKind(string(raw))
		if err != nil {
			return s, err
		}
		if n < 0 {
			return s, rules.Violate(rules.ReasonInvalidAmount)
		}
		burn[kind] += n
	}
	for kind, n := range burn {
		if n > acc.Resource(kind) {
			return s, rules.Violate(rules.ReasonNotEnoughResources)
		}
	}
	if !account.EnoughResources(running, burn) {
		return s, rules.Violate(rules.ReasonNotEnoughResources)
	}

	produced := 0
	for _, a := range running {
		produced += a.Powers
	}
	acc, err := acc.Earn(Payment(min(s.ConnectedCount(c.Player), produced)))
	if err != nil {
		return s, err
	}
	for _, kind := range resource.Kinds {
		if burn[kind] == 0 {
			continue
		}
		if acc, err = acc.RemoveResource(kind, burn[kind]); err != nil {
			return s, err
		}
	}

	next := s.withAccount(c.Player, acc)
	ph.Producers = without(ph.Producers, c.Player)
	if len(ph.Producers) == 0 {
		return next.finishSettle(), nil
	}
	return next.withPhase(ph), nil
}

// finishSettle 补货、调整电厂市场、重排出手顺序，开始下一轮拍卖。
func (s State) finishSettle() State {
	next := s
	next.markets = s.markets.Replenish(len(s.players), s.step)
	if s.step == 3 {
		next.plants = next.plants.RemoveLowestAndReplace()
	} else {
		next.plants = next.plants.RemoveHighestFuture()
	}
	next = next.enterStep3IfCollapsed().redeterminePlayOrder()
	next.round++
	return next.withPhase(AuctionPhase{Openers: slices.Clone(next.order), Opener: next.order[0]})
}
