package resource

import (
	"maps"

	"PowerLine/internal/game/rules"
)

// Markets 是按资源种类划分的一组市场，值语义，写时复制。
type Markets struct {
	byKind map[Kind]Market
}

// 开局库存：煤 24、油 18、垃圾 6、铀 2。
var initialStock = map[Kind]int{
	Coal:    24,
	Oil:     18,
	BioMass: 6,
	Uranium: 2,
}

// 每轮结算后的补货量：[玩家数-2][时代-1]。
var replenishTable = map[Kind][5][3]int{
	Coal:    {{3, 4, 3}, {4, 5, 3}, {5, 6, 4}, {5, 7, 5}, {7, 9, 6}},
	Oil:     {{2, 2, 4}, {2, 3, 4}, {3, 4, 5}, {4, 5, 6}, {5, 6, 7}},
	BioMass: {{1, 2, 3}, {1, 2, 3}, {2, 3, 4}, {3, 3, 5}, {3, 5, 6}},
	Uranium: {{1, 1, 1}, {1, 1, 1}, {1, 2, 2}, {2, 3, 2}, {2, 3, 3}},
}

// InitialMarkets 建好四种市场并按开局库存补满。
func InitialMarkets() Markets {
	byKind := map[Kind]Market{
		Coal:    DefaultMarket(Coal),
		Oil:     DefaultMarket(Oil),
		BioMass: DefaultMarket(BioMass),
		Uranium: UraniumMarket(),
	}
	for _, k := range Kinds {
		m, err := byKind[k].Add(initialStock[k])
		if err != nil {
			panic(err) // 常量表与档位不匹配属于编码错误
		}
		byKind[k] = m
	}
	return Markets{byKind: byKind}
}

func NewMarkets(markets ...Market) Markets {
	byKind := make(map[Kind]Market, len(markets))
	for _, m := range markets {
		byKind[m.Kind()] = m
	}
	return Markets{byKind: byKind}
}

func (ms Markets) Get(kind Kind) (Market, error) {
	m, ok := ms.byKind[kind]
	if !ok {
		return Market{}, rules.Violate(rules.ReasonUnknownKind, kind)
	}
	return m, nil
}

func (ms Markets) With(m Market) Markets {
	next := maps.Clone(ms.byKind)
	if next == nil {
		next = make(map[Kind]Market, 1)
	}
	next[m.Kind()] = m
	return Markets{byKind: next}
}

// Buy 计价并扣减库存，返回新市场组和总价。
func (ms Markets) Buy(kind Kind, amount int) (Markets, int, error) {
	m, err := ms.Get(kind)
	if err != nil {
		return ms, 0, err
	}
	cost, err := m.Cost(amount)
	if err != nil {
		return ms, 0, err
	}
	next, err := m.Remove(amount)
	if err != nil {
		return ms, 0, err
	}
	return ms.With(next), cost, nil
}

// ReplenishAmount 返回补货表里的数量；玩家数或时代越界时为 0。
func ReplenishAmount(kind Kind, players, step int) int {
	row, col := players-2, step-1
	table, ok := replenishTable[kind]
	if !ok || row < 0 || row >= len(table) || col < 0 || col >= len(table[row]) {
		return 0
	}
	return table[row][col]
}

// Replenish 按补货表补充每种资源，补货量以市场剩余空间为上限（规则如此，不是吞错）。
func (ms Markets) Replenish(players, step int) Markets {
	next := ms
	for _, k := range Kinds {
		m, ok := next.byKind[k]
		if !ok {
			continue
		}
		amount := min(ReplenishAmount(k, players, step), m.Free())
		if amount == 0 {
			continue
		}
		added, err := m.Add(amount)
		if err != nil {
			panic(err) // amount 已按剩余空间截断
		}
		next = next.With(added)
	}
	return next
}
