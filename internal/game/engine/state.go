package engine

import (
	"cmp"
	"maps"
	"math/rand/v2"
	"slices"

	"PowerLine/internal/game/account"
	"PowerLine/internal/game/asset"
	"PowerLine/internal/game/network"
	"PowerLine/internal/game/resource"
)

// State 是一局游戏的完整状态。值语义：任何命令都返回新的 State，旧值保持不变，
// 可以随时回放、分叉或序列化。
type State struct {
	graph     *network.Graph
	table     Table
	players   []Player // 座次
	order     []PlayerID
	step      int
	round     int
	accounts  map[PlayerID]account.Account
	occupants map[network.LocationID][]PlayerID
	plants    asset.Market
	markets   resource.Markets
	phase     Phase
}

// 与种子组合成 PCG 的第二个参数。
const seedStream = 0x9e3779b97f4a7c15

// New 开一局：随机决定出手顺序并洗电厂牌堆，从第 1 轮拍卖开始。
func New(settings Settings) (State, error) {
	table, err := settings.validate()
	if err != nil {
		return State{}, err
	}
	rng := rand.New(rand.NewPCG(settings.Seed, seedStream))

	players := slices.Clone(settings.Players)
	order := make([]PlayerID, len(players))
	accounts := make(map[PlayerID]account.Account, len(players))
	for i, p := range players {
		order[i] = p.ID
		accounts[p.ID] = account.New(account.StartingBalance)
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	return State{
		graph:     settings.Graph,
		table:     table,
		players:   players,
		order:     order,
		step:      1,
		round:     1,
		accounts:  accounts,
		occupants: map[network.LocationID][]PlayerID{},
		plants:    asset.NewMarket(rng, len(players)),
		markets:   resource.InitialMarkets(),
		phase:     AuctionPhase{Openers: slices.Clone(order), Opener: order[0]},
	}, nil
}

func (s State) Graph() *network.Graph {
	return s.graph
}

func (s State) Table() Table {
	return s.table
}

func (s State) Players() []Player {
	return slices.Clone(s.players)
}

// PlayOrder 是当前出手顺序，第一位最先开拍。
func (s State) PlayOrder() []PlayerID {
	return slices.Clone(s.order)
}

func (s State) Step() int {
	return s.step
}

func (s State) Round() int {
	return s.round
}

func (s State) Phase() Phase {
	if s.phase == nil {
		return nil
	}
	return s.phase.clone()
}

func (s State) Account(id PlayerID) (account.Account, bool) {
	acc, ok := s.accounts[id]
	return acc, ok
}

func (s State) AssetMarket() asset.Market {
	return s.plants
}

func (s State) ResourceMarkets() resource.Markets {
	return s.markets
}

// Occupants 返回已接入某城市的玩家，按接入先后。
func (s State) Occupants(loc network.LocationID) []PlayerID {
	return slices.Clone(s.occupants[loc])
}

// Connected 返回玩家接入的城市，按 id 升序。
func (s State) Connected(id PlayerID) []network.LocationID {
	var out []network.LocationID
	for loc, by := range s.occupants {
		if slices.Contains(by, id) {
			out = append(out, loc)
		}
	}
	slices.Sort(out)
	return out
}

func (s State) ConnectedCount(id PlayerID) int {
	n := 0
	for _, by := range s.occupants {
		if slices.Contains(by, id) {
			n++
		}
	}
	return n
}

// LeaderCount 是接入城市最多的玩家的城市数。
func (s State) LeaderCount() int {
	n := 0
	for _, p := range s.players {
		n = max(n, s.ConnectedCount(p.ID))
	}
	return n
}

// CurrentPlayer 返回当前该行动的玩家。结算阶段不限顺序、结束阶段无人行动时返回 false。
func (s State) CurrentPlayer() (PlayerID, bool) {
	switch ph := s.phase.(type) {
	case AuctionPhase:
		if ph.Round != nil {
			return ph.Round.Bidder, true
		}
		return ph.Opener, true
	case ProcurePhase:
		return head(ph.Remaining)
	case BuildPhase:
		return head(ph.Remaining)
	default:
		return "", false
	}
}

func (s State) Winner() (PlayerID, bool) {
	if ph, ok := s.phase.(EndedPhase); ok {
		return ph.Winner, true
	}
	return "", false
}

func (s State) seated(id PlayerID) bool {
	return slices.ContainsFunc(s.players, func(p Player) bool { return p.ID == id })
}

func (s State) withAccount(id PlayerID, acc account.Account) State {
	s.accounts = maps.Clone(s.accounts)
	s.accounts[id] = acc
	return s
}

func (s State) withOccupant(loc network.LocationID, id PlayerID) State {
	s.occupants = maps.Clone(s.occupants)
	s.occupants[loc] = append(slices.Clone(s.occupants[loc]), id)
	return s
}

func (s State) withPhase(p Phase) State {
	s.phase = p
	return s
}

// redeterminePlayOrder：接入城市多的在前，其次最贵电厂价格高的在前，再平按座次。
func (s State) redeterminePlayOrder() State {
	order := make([]PlayerID, len(s.players))
	for i, p := range s.players {
		order[i] = p.ID
	}
	highest := func(id PlayerID) int {
		a, ok := s.accounts[id].HighestAsset()
		if !ok {
			return 0
		}
		return a.Price
	}
	slices.SortStableFunc(order, func(a, b PlayerID) int {
		if c := cmp.Compare(s.ConnectedCount(b), s.ConnectedCount(a)); c != 0 {
			return c
		}
		return cmp.Compare(highest(b), highest(a))
	})
	s.order = order
	return s
}

func head(ids []PlayerID) (PlayerID, bool) {
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// after 返回 ids 中排在 id 后面的一位，循环。
func after(ids []PlayerID, id PlayerID) PlayerID {
	i := slices.Index(ids, id)
	return ids[(i+1)%len(ids)]
}

func without(ids []PlayerID, id PlayerID) []PlayerID {
	out := make([]PlayerID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func reversed(ids []PlayerID) []PlayerID {
	out := slices.Clone(ids)
	slices.Reverse(out)
	return out
}
