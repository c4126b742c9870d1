package account

import (
	"iter"
	"slices"

	"PowerLine/internal/game/asset"
	"PowerLine/internal/game/resource"
	"PowerLine/internal/game/rules"
)

// burnersOf 返回能用这种资源的电厂，单一燃料的排在混烧前面，同类按价格升序。
func burnersOf(assets []asset.Asset, kind resource.Kind) []asset.Asset {
	var out []asset.Asset
	for _, a := range assets {
		if a.Burns(kind) {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(x, y asset.Asset) int { return len(x.Consumes) - len(y.Consumes) })
	return out
}

// StorageAllocation 把库存摊到各电厂上：按资源固定顺序，先填单一燃料电厂再填混烧。
// 结果以电厂价格为键。
func (a Account) StorageAllocation() (map[int]map[resource.Kind]int, error) {
	alloc := make(map[int]map[resource.Kind]int, len(a.assets))
	for _, as := range a.assets {
		alloc[as.Price] = map[resource.Kind]int{}
	}
	for _, kind := range resource.Kinds {
		remaining := a.resources[kind]
		for _, as := range burnersOf(a.assets, kind) {
			if remaining == 0 {
				break
			}
			n := min(as.Capacity()-stored(alloc[as.Price]), remaining)
			alloc[as.Price][kind] += n
			remaining -= n
		}
		if remaining > 0 {
			return nil, rules.Violate(rules.ReasonNoStorage, remaining, kind)
		}
	}
	return alloc, nil
}

func stored(m map[resource.Kind]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

// StorageCapacity 是所有能用这种资源的电厂容量之和，不考虑已有库存。
func (a Account) StorageCapacity(kind resource.Kind) int {
	n := 0
	for _, as := range a.assets {
		if as.Burns(kind) {
			n += as.Capacity()
		}
	}
	return n
}

// StorageAvailable 是按当前摊放方式还能再存多少这种资源。
func (a Account) StorageAvailable(kind resource.Kind) int {
	alloc, err := a.StorageAllocation()
	if err != nil {
		return 0
	}
	n := 0
	for _, as := range a.assets {
		if as.Burns(kind) {
			n += as.Capacity() - stored(alloc[as.Price])
		}
	}
	return n
}

// EnoughResources 判断给定资源能否让这组电厂全部开工，贪心顺序与库存摊放一致。
func EnoughResources(assets []asset.Asset, resources map[resource.Kind]int) bool {
	need := make(map[int]int, len(assets))
	for _, as := range assets {
		need[as.Price] = as.Requires
	}
	for _, kind := range resource.Kinds {
		remaining := resources[kind]
		for _, as := range burnersOf(assets, kind) {
			n := min(need[as.Price], remaining)
			need[as.Price] -= n
			remaining -= n
		}
	}
	for _, n := range need {
		if n > 0 {
			return false
		}
	}
	return true
}

// Subsets 按位掩码枚举所有非空子集。
func Subsets[T any](items []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for mask := 1; mask < 1<<len(items); mask++ {
			subset := make([]T, 0, len(items))
			for i, item := range items {
				if mask&(1<<i) != 0 {
					subset = append(subset, item)
				}
			}
			if !yield(subset) {
				return
			}
		}
	}
}

// BestAchievableOutput 是用现有库存最多能供电的城市数。
func (a Account) BestAchievableOutput() int {
	best := 0
	for subset := range Subsets(a.assets) {
		if !EnoughResources(subset, a.resources) {
			continue
		}
		total := 0
		for _, as := range subset {
			total += as.Powers
		}
		best = max(best, total)
	}
	return best
}
