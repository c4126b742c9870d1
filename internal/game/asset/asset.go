package asset

import (
	"slices"

	"PowerLine/internal/game/resource"
)

// Asset 是一座电厂。价格在整副牌里唯一，作为身份标识。
type Asset struct {
	Price    int
	Consumes []resource.Kind // 空表示无需燃料
	Requires int
	Powers   int
}

// Capacity 是可存放燃料的上限：需求量的两倍。
func (a Asset) Capacity() int {
	return 2 * a.Requires
}

func (a Asset) Burns(kind resource.Kind) bool {
	return slices.Contains(a.Consumes, kind)
}

func (a Asset) Hybrid() bool {
	return len(a.Consumes) > 1
}

func (a Asset) NeedsFuel() bool {
	return len(a.Consumes) > 0 && a.Requires > 0
}

func plant(price int, requires, powers int, kinds ...resource.Kind) Asset {
	return Asset{Price: price, Consumes: kinds, Requires: requires, Powers: powers}
}

var (
	coal    = resource.Coal
	oil     = resource.Oil
	bio     = resource.BioMass
	uranium = resource.Uranium
)

// catalogue 按价格升序。
var catalogue = []Asset{
	plant(3, 2, 1, oil),
	plant(4, 2, 1, coal),
	plant(5, 2, 1, coal, oil),
	plant(6, 1, 1, bio),
	plant(7, 3, 2, oil),
	plant(8, 3, 2, coal),
	plant(9, 1, 1, oil),
	plant(10, 2, 2, coal),
	plant(11, 1, 2, uranium),
	plant(12, 2, 2, coal, oil),
	plant(13, 0, 1),
	plant(14, 2, 2, bio),
	plant(15, 2, 3, coal),
	plant(16, 2, 3, oil),
	plant(17, 1, 2, uranium),
	plant(18, 0, 2),
	plant(19, 2, 3, bio),
	plant(20, 3, 5, coal),
	plant(21, 2, 4, coal, oil),
	plant(22, 0, 2),
	plant(23, 1, 3, uranium),
	plant(24, 2, 4, bio),
	plant(25, 2, 5, coal),
	plant(26, 2, 5, oil),
	plant(27, 0, 3),
	plant(28, 1, 4, uranium),
	plant(29, 1, 3, coal, oil),
	plant(30, 3, 6, bio),
	plant(31, 3, 6, coal),
	plant(32, 3, 6, oil),
	plant(33, 0, 4),
	plant(34, 1, 5, uranium),
	plant(35, 1, 5, oil),
	plant(36, 3, 7, coal),
	plant(37, 0, 4),
	plant(38, 3, 7, bio),
	plant(39, 1, 6, uranium),
	plant(40, 2, 6, oil),
	plant(42, 2, 6, coal),
	plant(44, 0, 5),
	plant(46, 3, 7, coal, oil),
	plant(50, 0, 6),
}

// Catalogue 返回全部电厂的拷贝，按价格升序。
func Catalogue() []Asset {
	out := make([]Asset, len(catalogue))
	for i, a := range catalogue {
		out[i] = a.clone()
	}
	return out
}

// Lookup 按价格查电厂。
func Lookup(price int) (Asset, bool) {
	i, ok := slices.BinarySearchFunc(catalogue, price, func(a Asset, p int) int { return a.Price - p })
	if !ok {
		return Asset{}, false
	}
	return catalogue[i].clone(), true
}

func (a Asset) clone() Asset {
	a.Consumes = slices.Clone(a.Consumes)
	return a
}

// SortByPrice 原地按价格升序排序。
func SortByPrice(assets []Asset) {
	slices.SortFunc(assets, func(a, b Asset) int { return a.Price - b.Price })
}

// IndexOf 按价格查找下标，找不到返回 -1。
func IndexOf(assets []Asset, price int) int {
	return slices.IndexFunc(assets, func(a Asset) bool { return a.Price == price })
}

// Without 返回去掉指定价格后的新切片。
func Without(assets []Asset, price int) []Asset {
	out := make([]Asset, 0, len(assets))
	for _, a := range assets {
		if a.Price != price {
			out = append(out, a)
		}
	}
	return out
}
