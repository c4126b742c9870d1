package engine

import "PowerLine/internal/game/rules"

// Apply 是唯一的状态迁移入口：校验命令在当前阶段、当前玩家下是否合法，
// 成功返回新状态；失败时返回原状态和错误，不会有部分修改。
func Apply(s State, cmd Command) (State, error) {
	if cmd == nil {
		return s, rules.Violate(rules.ReasonInvalidCommand, "nil command")
	}
	if s.phase == nil {
		return s, rules.IllegalState("initialized game")
	}
	if _, ok := s.phase.(EndedPhase); ok {
		return s, rules.IllegalState("game in progress")
	}
	if !s.seated(cmd.Actor()) {
		return s, rules.Violate(rules.ReasonInvalidPlayers, "unknown player "+string(cmd.Actor()))
	}

	var (
		next State
		err  error
	)
	switch c := cmd.(type) {
	case StartAuction:
		next, err = s.startAuction(c)
	case RaiseBid:
		next, err = s.raiseBid(c)
	case PassBid:
		next, err = s.passBid(c)
	case PassAuction:
		next, err = s.passAuction(c)
	case BuyResource:
		next, err = s.buyResource(c)
	case PassBuyResources:
		next, err = s.passBuyResources(c)
	case ConnectLocation:
		next, err = s.connectLocation(c)
	case PassConnect:
		next, err = s.passConnect(c)
	case SettleOutput:
		next, err = s.settleOutput(c)
	case EndGame:
		next, err = s.endGame(c)
	default:
		return s, rules.Violate(rules.ReasonUnknownCommand, cmd.Name())
	}
	if err != nil {
		return s, err
	}
	return next, nil
}

func expectPhase(name PhaseName) error {
	return rules.IllegalState("phase " + string(name))
}

// checkTurn 要求 id 是当前该行动的玩家。
func (s State) checkTurn(id PlayerID) error {
	cur, ok := s.CurrentPlayer()
	if !ok || cur != id {
		return rules.IllegalState("turn of " + string(cur))
	}
	return nil
}

func (s State) auctionPhase(id PlayerID) (AuctionPhase, error) {
	ph, ok := s.phase.(AuctionPhase)
	if !ok {
		return AuctionPhase{}, expectPhase(PhaseAuction)
	}
	if err := s.checkTurn(id); err != nil {
		return AuctionPhase{}, err
	}
	return ph.clone().(AuctionPhase), nil
}

func (s State) procurePhase(id PlayerID) (ProcurePhase, error) {
	ph, ok := s.phase.(ProcurePhase)
	if !ok {
		return ProcurePhase{}, expectPhase(PhaseProcure)
	}
	if err := s.checkTurn(id); err != nil {
		return ProcurePhase{}, err
	}
	return ph.clone().(ProcurePhase), nil
}

func (s State) buildPhase(id PlayerID) (BuildPhase, error) {
	ph, ok := s.phase.(BuildPhase)
	if !ok {
		return BuildPhase{}, expectPhase(PhaseBuild)
	}
	if err := s.checkTurn(id); err != nil {
		return BuildPhase{}, err
	}
	return ph.clone().(BuildPhase), nil
}
