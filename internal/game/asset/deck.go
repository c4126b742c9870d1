package asset

import (
	"math/rand/v2"
	"slices"
)

// 开局按人数从洗好的牌里抽掉的张数。
var deckDiscards = map[int]int{2: 8, 3: 8, 4: 4, 5: 0, 6: 0}

// 开局摆在市场上的 3..10，以及固定压在牌堆顶的 13。
const (
	openingLow  = 3
	openingHigh = 10
	pinnedTop   = 13
)

// Deck 是电厂牌堆，下标 0 为堆顶。值语义。
type Deck struct {
	cards []Asset
}

// NewDeck 洗出开局牌堆：13 在顶，其余（去掉 3..10 与 13）用 rng 洗牌后按人数抽掉若干张。
func NewDeck(rng *rand.Rand, players int) Deck {
	var (
		top  Asset
		rest []Asset
	)
	for _, a := range Catalogue() {
		switch {
		case a.Price == pinnedTop:
			top = a
		case a.Price >= openingLow && a.Price <= openingHigh:
		default:
			rest = append(rest, a)
		}
	}
	rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	discard := min(deckDiscards[players], len(rest))
	rest = rest[discard:]
	return Deck{cards: append([]Asset{top}, rest...)}
}

// NewDeckOf 按给定顺序组牌，测试和回放用。
func NewDeckOf(cards ...Asset) Deck {
	return Deck{cards: slices.Clone(cards)}
}

func (d Deck) Top() (Asset, bool) {
	if len(d.cards) == 0 {
		return Asset{}, false
	}
	return d.cards[0], true
}

// Draw 去掉堆顶，空牌堆原样返回。
func (d Deck) Draw() Deck {
	if len(d.cards) == 0 {
		return d
	}
	return Deck{cards: d.cards[1:]}
}

func (d Deck) ReturnToBottom(a Asset) Deck {
	return Deck{cards: slices.Concat(d.cards, []Asset{a})}
}

func (d Deck) Remaining() int {
	return len(d.cards)
}

func (d Deck) Cards() []Asset {
	return slices.Clone(d.cards)
}
