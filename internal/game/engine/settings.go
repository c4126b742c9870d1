package engine

import (
	"fmt"

	"PowerLine/internal/game/network"
	"PowerLine/internal/game/rules"
)

type PlayerID string

type Player struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
}

const (
	MinPlayers = 2
	MaxPlayers = 6
)

// Table 是随人数变化的规则参数。
type Table struct {
	OwnershipCap   int `json:"ownershipCap"`
	Step2Threshold int `json:"step2Threshold"`
	EndThreshold   int `json:"endThreshold"`
	PlayRegions    int `json:"playRegions"`
}

var tables = map[int]Table{
	2: {OwnershipCap: 4, Step2Threshold: 10, EndThreshold: 21, PlayRegions: 3},
	3: {OwnershipCap: 3, Step2Threshold: 7, EndThreshold: 17, PlayRegions: 3},
	4: {OwnershipCap: 3, Step2Threshold: 7, EndThreshold: 17, PlayRegions: 4},
	5: {OwnershipCap: 3, Step2Threshold: 7, EndThreshold: 15, PlayRegions: 5},
	6: {OwnershipCap: 3, Step2Threshold: 6, EndThreshold: 14, PlayRegions: 5},
}

func TableFor(players int) (Table, error) {
	t, ok := tables[players]
	if !ok {
		return Table{}, rules.Violate(rules.ReasonInvalidPlayers, fmt.Sprintf("need %d..%d players, got %d", MinPlayers, MaxPlayers, players))
	}
	return t, nil
}

// 结算收入，下标为实际供电城市数，超过 20 按 20 算。
var payments = []int{10, 22, 33, 44, 54, 64, 73, 82, 90, 98, 105, 112, 118, 124, 129, 134, 138, 142, 145, 148, 150}

func Payment(powered int) int {
	return payments[max(0, min(powered, len(payments)-1))]
}

// LocationCost 是进入一座城市的费用，按已有占用人数递增。
func LocationCost(occupants int) int {
	switch occupants {
	case 0:
		return 10
	case 1:
		return 15
	default:
		return 20
	}
}

// Settings 是开一局所需的全部输入。Graph 应当已经裁剪到本局的区域。
// 同样的 Settings 总是得到同样的开局。
type Settings struct {
	Players []Player
	Graph   *network.Graph
	Seed    uint64
}

func (st Settings) validate() (Table, error) {
	table, err := TableFor(len(st.Players))
	if err != nil {
		return Table{}, err
	}
	seen := make(map[PlayerID]struct{}, len(st.Players))
	for _, p := range st.Players {
		if p.ID == "" {
			return Table{}, rules.Violate(rules.ReasonInvalidPlayers, "empty player id")
		}
		if _, dup := seen[p.ID]; dup {
			return Table{}, rules.Violate(rules.ReasonInvalidPlayers, fmt.Sprintf("duplicate player %q", p.ID))
		}
		seen[p.ID] = struct{}{}
	}
	if st.Graph == nil {
		return Table{}, rules.Violate(rules.ReasonInvalidGraph, "missing graph")
	}
	if st.Graph.RegionCount() != table.PlayRegions {
		return Table{}, rules.Violate(rules.ReasonInvalidRegions, table.PlayRegions)
	}
	return table, nil
}
