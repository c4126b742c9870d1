package engine

import (
	"slices"

	"PowerLine/internal/game/asset"
	"PowerLine/internal/game/rules"
)

// checkBid 校验出价人能否承担这次出价：到了持有上限必须指定要拆的电厂，余额要够。
func (s State) checkBid(id PlayerID, bid, replacesPrice int) (*asset.Asset, error) {
	acc := s.accounts[id]
	var replaces *asset.Asset
	if replacesPrice != 0 {
		a, err := acc.Asset(replacesPrice)
		if err != nil {
			return nil, err
		}
		replaces = &a
	}
	if len(acc.Assets()) >= s.table.OwnershipCap && replaces == nil {
		return nil, rules.Violate(rules.ReasonMustReplace)
	}
	if acc.Balance() < bid {
		return nil, rules.Violate(rules.ReasonBalanceTooLow)
	}
	return replaces, nil
}

func (s State) startAuction(c StartAuction) (State, error) {
	ph, err := s.auctionPhase(c.Player)
	if err != nil {
		return s, err
	}
	if ph.Round != nil {
		return s, rules.IllegalState("no auction in progress")
	}
	replaces, err := s.checkBid(c.Player, c.Bid, c.Replaces)
	if err != nil {
		return s, err
	}
	offered, err := s.plants.Find(c.Asset)
	if err != nil {
		return s, err
	}
	if c.Bid < offered.Price {
		return s, rules.Violate(rules.ReasonBidTooLow, offered.Price)
	}

	plants, err := s.plants.Take(offered.Price)
	if err != nil {
		return s, err
	}
	next := s
	next.plants = plants.RemoveLowerOrEqual(s.LeaderCount())

	// 竞拍者按座次排，从开拍人的下一位开始
	bidders := make([]PlayerID, 0, len(ph.Openers))
	for _, p := range s.players {
		if slices.Contains(ph.Openers, p.ID) {
			bidders = append(bidders, p.ID)
		}
	}
	round := AuctionRound{
		Bidders:  bidders,
		Bidder:   after(bidders, c.Player),
		Asset:    offered,
		Bid:      c.Bid,
		Replaces: replaces,
	}

	if len(ph.Openers) == 1 {
		next, err = next.completePurchase(c.Player, round)
		if err != nil {
			return s, err
		}
		ph.Openers = nil
		ph.Closed = append(ph.Closed, round)
		return next.finishAuction(ph), nil
	}
	ph.Round = &round
	return next.withPhase(ph), nil
}

func (s State) raiseBid(c RaiseBid) (State, error) {
	ph, err := s.auctionPhase(c.Player)
	if err != nil {
		return s, err
	}
	if ph.Round == nil {
		return s, rules.IllegalState("auction in progress")
	}
	replaces, err := s.checkBid(c.Player, c.Bid, c.Replaces)
	if err != nil {
		return s, err
	}
	if c.Bid <= ph.Round.Bid {
		return s, rules.Violate(rules.ReasonBidTooLow, ph.Round.Bid+1)
	}

	ph.Round.Bid = c.Bid
	ph.Round.Replaces = replaces
	ph.Round.Bidder = after(ph.Round.Bidders, c.Player)
	return s.withPhase(ph), nil
}

// passBid 退出当前竞拍。只剩一人时该人按当前出价成交。
func (s State) passBid(c PassBid) (State, error) {
	ph, err := s.auctionPhase(c.Player)
	if err != nil {
		return s, err
	}
	round := ph.Round
	if round == nil {
		return s, rules.IllegalState("auction in progress")
	}
	if len(round.Bidders) < 2 {
		return s, rules.IllegalState("more than one bidder")
	}

	nextBidder := after(round.Bidders, c.Player)
	round.Bidders = without(round.Bidders, c.Player)
	round.Bidder = nextBidder
	if len(round.Bidders) > 1 {
		return s.withPhase(ph), nil
	}

	winner := nextBidder
	next, err := s.completePurchase(winner, *round)
	if err != nil {
		return s, err
	}
	// 开拍人自己拍到才轮到下一位开拍，否则开拍人继续开拍
	if winner == ph.Opener {
		ph.Opener = after(ph.Openers, ph.Opener)
	}
	ph.Openers = without(ph.Openers, winner)
	ph.Closed = append(ph.Closed, *round)
	ph.Round = nil
	if len(ph.Openers) == 0 {
		return next.finishAuction(ph), nil
	}
	return next.withPhase(ph), nil
}

// passAuction 放弃开拍，本阶段也不再参与别人的竞拍。第一轮不允许。
func (s State) passAuction(c PassAuction) (State, error) {
	ph, err := s.auctionPhase(c.Player)
	if err != nil {
		return s, err
	}
	if s.round == 1 {
		return s, rules.Violate(rules.ReasonCannotPassFirstRound)
	}
	if ph.Round != nil {
		return s, rules.IllegalState("no auction in progress")
	}

	nextOpener := after(ph.Openers, ph.Opener)
	ph.Openers = without(ph.Openers, ph.Opener)
	ph.Opener = nextOpener
	if len(ph.Openers) == 0 {
		return s.finishAuction(ph), nil
	}
	return s.withPhase(ph), nil
}

func (s State) completePurchase(winner PlayerID, round AuctionRound) (State, error) {
	acc, err := s.accounts[winner].Pay(round.Bid)
	if err != nil {
		return s, err
	}
	acc, err = acc.AddAsset(round.Asset, round.Replaces)
	if err != nil {
		return s, err
	}
	return s.withAccount(winner, acc), nil
}

// finishAuction 结束拍卖阶段，进入买资源阶段。
func (s State) finishAuction(ph AuctionPhase) State {
	next := s
	if s.round == 1 {
		next = next.redeterminePlayOrder()
	}
	// 整个阶段没人买电厂时，丢掉最便宜的一座
	if len(ph.Closed) == 0 {
		next.plants = next.plants.RemoveLowestAndReplace()
	}
	next = next.enterStep3IfCollapsed()
	return next.withPhase(ProcurePhase{Remaining: reversed(next.order)})
}

// enterStep3IfCollapsed：第二阶段下 future 已空（牌堆耗尽合并为一排）时进入第三阶段。
func (s State) enterStep3IfCollapsed() State {
	if s.step == 2 && s.plants.Collapsed() {
		s.step = 3
		s.plants = s.plants.RemoveLowestWithoutReplacement()
	}
	return s
}
