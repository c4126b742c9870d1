package account

import (
	"maps"
	"slices"

	"PowerLine/internal/game/asset"
	"PowerLine/internal/game/resource"
	"PowerLine/internal/game/rules"
)

// StartingBalance 是每位玩家的开局资金。
const StartingBalance = 50

// Account 是一位玩家的资金、电厂和库存。值语义，所有修改都返回新值。
type Account struct {
	balance   int
	assets    []asset.Asset // 按价格升序
	resources map[resource.Kind]int
}

func New(balance int) Account {
	return Account{balance: balance}
}

func (a Account) Balance() int {
	return a.balance
}

func (a Account) Assets() []asset.Asset {
	return slices.Clone(a.assets)
}

// Resources 返回库存拷贝，不含数量为 0 的种类。
func (a Account) Resources() map[resource.Kind]int {
	out := make(map[resource.Kind]int, len(a.resources))
	for k, n := range a.resources {
		if n > 0 {
			out[k] = n
		}
	}
	return out
}

func (a Account) Resource(kind resource.Kind) int {
	return a.resources[kind]
}

func (a Account) HighestAsset() (asset.Asset, bool) {
	if len(a.assets) == 0 {
		return asset.Asset{}, false
	}
	return a.assets[len(a.assets)-1], true
}

func (a Account) Owns(price int) bool {
	return asset.IndexOf(a.assets, price) >= 0
}

// Asset 按价格取自己拥有的电厂。
func (a Account) Asset(price int) (asset.Asset, error) {
	i := asset.IndexOf(a.assets, price)
	if i < 0 {
		return asset.Asset{}, rules.Violate(rules.ReasonNotOwned, price)
	}
	return a.assets[i], nil
}

func (a Account) Pay(amount int) (Account, error) {
	if amount < 0 {
		return a, rules.Violate(rules.ReasonInvalidAmount)
	}
	if amount > a.balance {
		return a, rules.Violate(rules.ReasonBalanceTooLow)
	}
	next := a.clone()
	next.balance -= amount
	return next, nil
}

func (a Account) Earn(amount int) (Account, error) {
	if amount <= 0 {
		return a, rules.Violate(rules.ReasonInvalidAmount)
	}
	next := a.clone()
	next.balance += amount
	return next, nil
}

// AddAsset 加入一座电厂，replaces 非空时先拆掉它。
// 拆掉后放不下的库存按资源固定顺序保留，多出的丢弃。
func (a Account) AddAsset(added asset.Asset, replaces *asset.Asset) (Account, error) {
	next := a.clone()
	if replaces != nil {
		if !a.Owns(replaces.Price) {
			return a, rules.Violate(rules.ReasonNotOwned, replaces.Price)
		}
		next.assets = asset.Without(next.assets, replaces.Price)
	}
	next.assets = append(next.assets, added)
	asset.SortByPrice(next.assets)

	if replaces == nil {
		return next, nil
	}
	return next.fitResources(), nil
}

func (a Account) fitResources() Account {
	held := a.resources
	next := a.clone()
	next.resources = nil
	for _, kind := range resource.Kinds {
		n := min(held[kind], next.StorageAvailable(kind))
		if n > 0 {
			next.resources = withCount(next.resources, kind, n)
		}
	}
	return next
}

func (a Account) AddResource(kind resource.Kind, amount int) (Account, error) {
	if amount <= 0 {
		return a, rules.Violate(rules.ReasonInvalidAmount)
	}
	if amount > a.StorageAvailable(kind) {
		return a, rules.Violate(rules.ReasonMaxStorage)
	}
	next := a.clone()
	next.resources = withCount(next.resources, kind, a.resources[kind]+amount)
	return next, nil
}

func (a Account) RemoveResource(kind resource.Kind, amount int) (Account, error) {
	if amount < 0 {
		return a, rules.Violate(rules.ReasonInvalidAmount)
	}
	if amount > a.resources[kind] {
		return a, rules.Violate(rules.ReasonNotEnoughResources)
	}
	next := a.clone()
	next.resources = withCount(next.resources, kind, a.resources[kind]-amount)
	return next, nil
}

func (a Account) clone() Account {
	return Account{
		balance:   a.balance,
		assets:    slices.Clone(a.assets),
		resources: maps.Clone(a.resources),
	}
}

func withCount(m map[resource.Kind]int, kind resource.Kind, n int) map[resource.Kind]int {
	if m == nil {
		m = make(map[resource.Kind]int, len(resource.Kinds))
	}
	if n == 0 {
		delete(m, kind)
		return m
	}
	m[kind] = n
	return m
}
