package account

import (
	"errors"
	"slices"
	"testing"

	"PowerLine/internal/game/asset"
	"PowerLine/internal/game/resource"
	"PowerLine/internal/game/rules"
	"PowerLine/modules/kit/errx"
)

func plant(t *testing.T, price int) asset.Asset {
	t.Helper()
	a, ok := asset.Lookup(price)
	if !ok {
		t.Fatalf("目录里没有电厂 %d", price)
	}
	return a
}

func with(t *testing.T, prices ...int) Account {
	t.Helper()
	acc := New(StartingBalance)
	for _, p := range prices {
		var err error
		acc, err = acc.AddAsset(plant(t, p), nil)
		if err != nil {
			t.Fatalf("AddAsset(%d) err=%v", p, err)
		}
	}
	return acc
}

func store(t *testing.T, acc Account, kind resource.Kind, n int) Account {
	t.Helper()
	next, err := acc.AddResource(kind, n)
	if err != nil {
		t.Fatalf("AddResource(%s,%d) err=%v", kind, n, err)
	}
	return next
}

func TestPay_余额不足报规则错误(t *testing.T) {
	acc := New(50)
	next, err := acc.Pay(20)
	if err != nil || next.Balance() != 30 || acc.Balance() != 50 {
		t.Fatalf("balance=%d orig=%d err=%v", next.Balance(), acc.Balance(), err)
	}
	_, err = next.Pay(31)
	if errx.ReasonOf(err) != rules.ReasonBalanceTooLow.Code {
		t.Fatalf("期望 BALANCE_TOO_LOW, got=%v", err)
	}
	if _, err = acc.Earn(0); errx.ReasonOf(err) != rules.ReasonInvalidAmount.Code {
		t.Fatalf("Earn(0) 应失败, got=%v", err)
	}
}

func TestAddAsset_保持价格升序_替换必须拥有(t *testing.T) {
	acc := with(t, 10, 4, 7)
	got := make([]int, 0, 3)
	for _, a := range acc.Assets() {
		got = append(got, a.Price)
	}
	if !slices.Equal(got, []int{4, 7, 10}) {
		t.Fatalf("assets=%v", got)
	}
	if h, _ := acc.HighestAsset(); h.Price != 10 {
		t.Fatalf("highest=%d", h.Price)
	}

	missing := plant(t, 3)
	_, err := acc.AddAsset(plant(t, 13), &missing)
	if errx.ReasonOf(err) != rules.ReasonNotOwned.Code {
		t.Fatalf("期望 NOT_OWNED, got=%v", err)
	}
}

func TestAddAsset_替换后放不下的库存被丢弃(t *testing.T) {
	acc := with(t, 4, 10)
	acc = store(t, acc, resource.Coal, 8)

	replaced := plant(t, 10)
	next, err := acc.AddAsset(plant(t, 13), &replaced)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if next.Resource(resource.Coal) != 4 {
		t.Fatalf("只剩 4 号电厂，煤应剩 4, got=%d", next.Resource(resource.Coal))
	}
	if acc.Resource(resource.Coal) != 8 {
		t.Fatalf("原账户不应被修改")
	}
}

func TestAddResource_累加而不是覆盖(t *testing.T) {
	acc := with(t, 4)
	acc = store(t, acc, resource.Coal, 1)
	acc = store(t, acc, resource.Coal, 2)
	if acc.Resource(resource.Coal) != 3 {
		t.Fatalf("coal=%d", acc.Resource(resource.Coal))
	}
	_, err := acc.AddResource(resource.Coal, 2)
	if !errors.Is(err, rules.ErrRuleViolation) || err.Error() != "GAME_RULE_VIOLATION: max storage exceeded" {
		t.Fatalf("期望 max storage exceeded, got=%v", err)
	}
	if _, err = acc.AddResource(resource.Oil, 1); errx.ReasonOf(err) != rules.ReasonMaxStorage.Code {
		t.Fatalf("没有烧油的电厂, got=%v", err)
	}
}

func TestStorage_混烧电厂共享容量(t *testing.T) {
	// 3 烧油 容量 4，4 烧煤 容量 4，5 混烧 容量 4
	acc := with(t, 3, 4, 5)
	if acc.StorageCapacity(resource.Coal) != 8 || acc.StorageCapacity(resource.Oil) != 8 {
		t.Fatalf("capacity coal=%d oil=%d", acc.StorageCapacity(resource.Coal), acc.StorageCapacity(resource.Oil))
	}

	acc = store(t, acc, resource.Oil, 6)
	if got := acc.StorageAvailable(resource.Coal); got != 6 {
		t.Fatalf("油占了混烧 2 格，煤应还能放 6, got=%d", got)
	}
	acc = store(t, acc, resource.Coal, 6)
	if acc.StorageAvailable(resource.Coal) != 0 || acc.StorageAvailable(resource.Oil) != 0 {
		t.Fatalf("应已满")
	}

	alloc, err := acc.StorageAllocation()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if alloc[4][resource.Coal] != 4 || alloc[5][resource.Coal] != 2 || alloc[5][resource.Oil] != 2 || alloc[3][resource.Oil] != 4 {
		t.Fatalf("alloc=%v", alloc)
	}
}

func TestRemoveResource_不够时失败(t *testing.T) {
	acc := store(t, with(t, 4), resource.Coal, 2)
	if _, err := acc.RemoveResource(resource.Coal, 3); errx.ReasonOf(err) != rules.ReasonNotEnoughResources.Code {
		t.Fatalf("期望 NOT_ENOUGH_RESOURCES, got=%v", err)
	}
	next, err := acc.RemoveResource(resource.Coal, 2)
	if err != nil || len(next.Resources()) != 0 {
		t.Fatalf("resources=%v err=%v", next.Resources(), err)
	}
}

func TestEnoughResources_混烧先用单一燃料电厂(t *testing.T) {
	assets := []asset.Asset{plant(t, 4), plant(t, 5)}
	if !EnoughResources(assets, map[resource.Kind]int{resource.Coal: 3, resource.Oil: 1}) {
		t.Fatalf("煤 3 油 1 应够 4+5")
	}
	if EnoughResources(assets, map[resource.Kind]int{resource.Coal: 3}) {
		t.Fatalf("煤 3 不够 4+5")
	}
	if !EnoughResources([]asset.Asset{plant(t, 13)}, nil) {
		t.Fatalf("无燃料电厂不需要资源")
	}
}

func TestSubsets_枚举全部非空子集(t *testing.T) {
	n := 0
	seen := map[string]bool{}
	for s := range Subsets([]int{1, 2, 3, 4}) {
		n++
		key := ""
		for _, v := range s {
			key += string(rune('0' + v))
		}
		seen[key] = true
	}
	if n != 15 || len(seen) != 15 || !seen["1234"] || !seen["24"] {
		t.Fatalf("n=%d seen=%v", n, seen)
	}
}

func TestBestAchievableOutput_选出最优组合(t *testing.T) {
	// 4: 煤2→1，10: 煤2→2，13: 免燃料→1
	acc := with(t, 4, 10, 13)
	acc = store(t, acc, resource.Coal, 2)
	if got := acc.BestAchievableOutput(); got != 3 {
		t.Fatalf("2 个煤应选 10+13 供 3 城, got=%d", got)
	}
	acc = store(t, acc, resource.Coal, 2)
	if got := acc.BestAchievableOutput(); got != 4 {
		t.Fatalf("4 个煤全开供 4 城, got=%d", got)
	}
	if New(50).BestAchievableOutput() != 0 {
		t.Fatalf("没有电厂时为 0")
	}
}
