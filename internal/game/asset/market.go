package asset

import (
	"math/rand/v2"
	"slices"

	"PowerLine/internal/game/rules"
)

// Market 是电厂市场：当前可拍（current）和下一档（future）两排，外加牌堆。
//
// drawsUntilCollapse 记录还能从牌堆补几次。减到 1 时的那次移除不再补牌，
// 而是把两排合并成一排（第三阶段）。
type Market struct {
	deck               Deck
	current            []Asset
	future             []Asset
	drawsUntilCollapse int
}

// NewMarket 开局市场：current 3..6，future 7..10。
func NewMarket(rng *rand.Rand, players int) Market {
	return NewMarketOf(NewDeck(rng, players))
}

// NewMarketOf 用给定牌堆开局。
func NewMarketOf(deck Deck) Market {
	var current, future []Asset
	for _, a := range Catalogue() {
		switch {
		case a.Price >= openingLow && a.Price <= openingLow+3:
			current = append(current, a)
		case a.Price > openingLow+3 && a.Price <= openingHigh:
			future = append(future, a)
		}
	}
	return Market{
		deck:               deck,
		current:            current,
		future:             future,
		drawsUntilCollapse: deck.Remaining() + 1,
	}
}

func (m Market) Current() []Asset {
	return slices.Clone(m.current)
}

func (m Market) Future() []Asset {
	return slices.Clone(m.future)
}

func (m Market) Deck() Deck {
	return m.deck
}

func (m Market) DrawsUntilCollapse() int {
	return m.drawsUntilCollapse
}

// Contains 判断电厂是否在 current 里。
func (m Market) Contains(price int) bool {
	return IndexOf(m.current, price) >= 0
}

// Find 在 current 里按价格取电厂。
func (m Market) Find(price int) (Asset, error) {
	i := IndexOf(m.current, price)
	if i < 0 {
		return Asset{}, rules.Violate(rules.ReasonNotInCurrent, price)
	}
	return m.current[i], nil
}

// Take 从 current 拿走一座电厂并补牌。
func (m Market) Take(price int) (Market, error) {
	if !m.Contains(price) {
		return m, rules.Violate(rules.ReasonNotInCurrent, price)
	}
	return m.removeAndReplace(price, true), nil
}

// RemoveLowerOrEqual 反复移除 current 里价格不超过 price 的电厂（会补牌）。
func (m Market) RemoveLowerOrEqual(price int) Market {
	for len(m.current) > 0 && m.current[0].Price <= price {
		m = m.removeAndReplace(m.current[0].Price, true)
	}
	return m
}

// RemoveHighestFuture 把 future 里最贵的电厂压回牌堆底。
func (m Market) RemoveHighestFuture() Market {
	if len(m.future) == 0 {
		return m
	}
	highest := m.future[len(m.future)-1]
	next := m.removeAndReplace(highest.Price, true)
	next.deck = next.deck.ReturnToBottom(highest)
	return next
}

func (m Market) RemoveLowestAndReplace() Market {
	if len(m.current) == 0 {
		return m
	}
	return m.removeAndReplace(m.current[0].Price, true)
}

func (m Market) RemoveLowestWithoutReplacement() Market {
	if len(m.current) == 0 {
		return m
	}
	return m.removeAndReplace(m.current[0].Price, false)
}

// CollapseToSingleTier 合并为一排，之后不再有 future。
func (m Market) CollapseToSingleTier() Market {
	return Market{
		deck:               m.deck,
		current:            slices.Concat(m.current, m.future),
		future:             nil,
		drawsUntilCollapse: 0,
	}
}

// Collapsed 表示已经合并为一排。
func (m Market) Collapsed() bool {
	return len(m.future) == 0
}

func (m Market) removeAndReplace(price int, replace bool) Market {
	pool := slices.Concat(Without(m.current, price), Without(m.future, price))

	collapsing := m.drawsUntilCollapse == 1
	drawn := false
	if replace && !collapsing {
		if top, ok := m.deck.Top(); ok {
			pool = append(pool, top)
			drawn = true
		}
	}
	SortByPrice(pool)

	n := min(len(m.current), len(pool))
	next := Market{
		deck:               m.deck,
		current:            slices.Clone(pool[:n]),
		future:             slices.Clone(pool[n:]),
		drawsUntilCollapse: max(0, m.drawsUntilCollapse-1),
	}
	if collapsing {
		return next.CollapseToSingleTier()
	}
	if drawn {
		next.deck = next.deck.Draw()
	}
	return next
}
