package resource

import (
	"slices"

	"PowerLine/internal/game/rules"
)

// Tier 是一个价格档：容量、单价、已填数量。
type Tier struct {
	Capacity int
	Cost     int
	Filled   int
}

// Market 是单种资源的分档市场，按单价升序排列。值语义，所有操作都返回新值。
//
// 买入与计价从最便宜的档开始；补货从最贵的未满档往回填，
// 因此补货永远不会压低最便宜档的价格。
type Market struct {
	kind  Kind
	tiers []Tier
}

func NewMarket(kind Kind, tiers ...Tier) Market {
	return Market{kind: kind, tiers: slices.Clone(tiers)}
}

// DefaultMarket 为 8 档、每档 3 个、单价 1..8。
func DefaultMarket(kind Kind) Market {
	tiers := make([]Tier, 0, 8)
	for cost := 1; cost <= 8; cost++ {
		tiers = append(tiers, Tier{Capacity: 3, Cost: cost})
	}
	return Market{kind: kind, tiers: tiers}
}

// UraniumMarket 为 1..8 加 10/12/14/16，每档 1 个。
func UraniumMarket() Market {
	tiers := make([]Tier, 0, 12)
	for cost := 1; cost <= 8; cost++ {
		tiers = append(tiers, Tier{Capacity: 1, Cost: cost})
	}
	for _, cost := range []int{10, 12, 14, 16} {
		tiers = append(tiers, Tier{Capacity: 1, Cost: cost})
	}
	return Market{kind: Uranium, tiers: tiers}
}

func (m Market) Kind() Kind {
	return m.kind
}

func (m Market) Tiers() []Tier {
	return slices.Clone(m.tiers)
}

func (m Market) Available() int {
	n := 0
	for _, t := range m.tiers {
		n += t.Filled
	}
	return n
}

func (m Market) Capacity() int {
	n := 0
	for _, t := range m.tiers {
		n += t.Capacity
	}
	return n
}

func (m Market) Free() int {
	return m.Capacity() - m.Available()
}

// Cost 计算买入 amount 个的总价，库存不足时报错。
func (m Market) Cost(amount int) (int, error) {
	if err := m.checkTake(amount); err != nil {
		return 0, err
	}
	total, remaining := 0, amount
	for _, t := range m.tiers {
		if remaining == 0 {
			break
		}
		n := min(t.Filled, remaining)
		total += n * t.Cost
		remaining -= n
	}
	return total, nil
}

// Remove 从最便宜的档开始扣减。
func (m Market) Remove(amount int) (Market, error) {
	if err := m.checkTake(amount); err != nil {
		return m, err
	}
	next := m.Tiers()
	remaining := amount
	for i := range next {
		if remaining == 0 {
			break
		}
		n := min(next[i].Filled, remaining)
		next[i].Filled -= n
		remaining -= n
	}
	return Market{kind: m.kind, tiers: next}, nil
}

// Add 从最贵的未满档往回填，空间不足时报错，不做部分填充。
func (m Market) Add(amount int) (Market, error) {
	if amount < 0 {
		return m, rules.Violate(rules.ReasonInvalidAmount)
	}
	if amount > m.Free() {
		return m, rules.Violate(rules.ReasonMarketFull, amount, m.kind)
	}
	next := m.Tiers()
	remaining := amount
	for i := len(next) - 1; i >= 0 && remaining > 0; i-- {
		n := min(next[i].Capacity-next[i].Filled, remaining)
		next[i].Filled += n
		remaining -= n
	}
	return Market{kind: m.kind, tiers: next}, nil
}

func (m Market) checkTake(amount int) error {
	if amount < 0 {
		return rules.Violate(rules.ReasonInvalidAmount)
	}
	if amount > m.Available() {
		return rules.Violate(rules.ReasonNotEnoughSupply, m.kind)
	}
	return nil
}
