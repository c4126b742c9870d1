package engine

import (
	"slices"

	"PowerLine/internal/game/rules"
)

// endGame 在有玩家达到终局城市数后结束游戏，只能在拍卖或建网阶段由当前玩家发起。
func (s State) endGame(c EndGame) (State, error) {
	switch ph := s.phase.(type) {
	case AuctionPhase:
		// 正在竞拍的电厂已经离开市场
		if ph.Round != nil {
			return s, rules.IllegalState("no auction in progress")
		}
	case BuildPhase:
	default:
		return s, rules.IllegalState("phase " + string(PhaseAuction) + " or " + string(PhaseBuild))
	}
	if err := s.checkTurn(c.Player); err != nil {
		return s, err
	}
	if s.LeaderCount() < s.table.EndThreshold {
		return s, rules.Violate(rules.ReasonEndNotReached)
	}
	return s.withPhase(EndedPhase{Winner: s.winner()}), nil
}

// Standing 是终局排名的依据。
type Standing struct {
	Player    PlayerID `json:"player"`
	Powered   int      `json:"powered"`
	Balance   int      `json:"balance"`
	Connected int      `json:"connected"`
}

func (a Standing) beats(b Standing) bool {
	if a.Powered != b.Powered {
		return a.Powered > b.Powered
	}
	if a.Balance != b.Balance {
		return a.Balance > b.Balance
	}
	return a.Connected > b.Connected
}

func (s State) standingOf(id PlayerID) Standing {
	acc := s.accounts[id]
	connected := s.ConnectedCount(id)
	return Standing{
		Player:    id,
		Powered:   min(connected, acc.BestAchievableOutput()),
		Balance:   acc.Balance(),
		Connected: connected,
	}
}

// Standings 按胜负规则从高到低排列所有玩家：能供电的城市数、余额、接入城市数，完全相同时座次靠前者在前。
func (s State) Standings() []Standing {
	out := make([]Standing, len(s.players))
	for i, p := range s.players {
		out[i] = s.standingOf(p.ID)
	}
	slices.SortStableFunc(out, func(a, b Standing) int {
		switch {
		case a.beats(b):
			return -1
		case b.beats(a):
			return 1
		}
		return 0
	})
	return out
}

func (s State) winner() PlayerID {
	return s.Standings()[0].Player
}
