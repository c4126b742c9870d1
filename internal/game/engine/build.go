package engine

import (
	"slices"

	"PowerLine/internal/game/rules"
)

// connectLocation 把一座城市接入玩家的网络：城市费 + 从已有网络过去的最短连线费。
func (s State) connectLocation(c ConnectLocation) (State, error) {
	if _, err := s.buildPhase(c.Player); err != nil {
		return s, err
	}
	if !s.graph.Known(c.Location) {
		return s, rules.Violate(rules.ReasonUnknownLocation, c.Location)
	}
	loc, ok := s.graph.LocationByName(c.Location)
	if !ok {
		return s, rules.Violate(rules.ReasonNotPlayable, c.Location)
	}
	occupants := s.occupants[loc.ID]
	if slices.Contains(occupants, c.Player) {
		return s, rules.Violate(rules.ReasonAlreadyConnected)
	}
	if len(occupants) >= s.step {
		return s, rules.Violate(rules.ReasonMaxConnections)
	}

	cost := LocationCost(len(occupants))
	if owned := s.Connected(c.Player); len(owned) > 0 {
		link, err := s.graph.MinConnectionCost(owned, loc.ID)
		if err != nil {
			return s, err
		}
		cost += link
	}
	acc, err := s.accounts[c.Player].Pay(cost)
	if err != nil {
		return s, err
	}

	next := s.withAccount(c.Player, acc).withOccupant(loc.ID, c.Player)
	next.plants = next.plants.RemoveLowerOrEqual(next.LeaderCount())
	return next, nil
}

func (s State) passConnect(c PassConnect) (State, error) {
	ph, err := s.buildPhase(c.Player)
	if err != nil {
		return s, err
	}
	ph.Remaining = ph.Remaining[1:]
	if len(ph.Remaining) == 0 {
		return s.finishBuild()
	}
	return s.withPhase(ph), nil
}

// finishBuild 结束建网：领先者达到门槛时进入第二阶段，随后进入结算。
func (s State) finishBuild() (State, error) {
	next := s
	leader := s.LeaderCount()
	if s.step == 1 && leader >= s.table.Step2Threshold {
		next.step = 2
		next.plants = next.plants.RemoveLowestAndReplace().RemoveLowerOrEqual(leader)
	} else {
		next = next.enterStep3IfCollapsed()
	}
	return next.startSettle()
}
