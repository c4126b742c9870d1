package engine

import (
	"errors"
	"slices"
	"testing"

	"PowerLine/internal/game/account"
	"PowerLine/internal/game/asset"
	"PowerLine/internal/game/network"
	"PowerLine/internal/game/resource"
	"PowerLine/internal/game/rules"
	"PowerLine/modules/kit/errx"
)

// testMap：north(a1,a2) middle(b1,b2) south(c1,c2) far(d1)，开局裁掉 far。
func testMap(t *testing.T, regions ...string) *network.Graph {
	t.Helper()
	b := network.NewBuilder()
	north, middle, south, far := b.AddRegion("north"), b.AddRegion("middle"), b.AddRegion("south"), b.AddRegion("far")
	a1, a2 := b.AddLocation("a1", north), b.AddLocation("a2", north)
	b1, b2 := b.AddLocation("b1", middle), b.AddLocation("b2", middle)
	c1, c2 := b.AddLocation("c1", south), b.AddLocation("c2", south)
	d1 := b.AddLocation("d1", far)
	b.Connect(a1, a2, 5)
	b.Connect(a2, b1, 8)
	b.Connect(b1, b2, 4)
	b.Connect(b2, c1, 6)
	b.Connect(c1, c2, 3)
	b.Connect(a1, c2, 20)
	b.Connect(c1, d1, 7)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("build err=%v", err)
	}
	if len(regions) == 0 {
		regions = []string{"north", "middle", "south"}
	}
	view, err := g.RestrictToRegions(regions...)
	if err != nil {
		t.Fatalf("restrict err=%v", err)
	}
	return view
}

func twoPlayers(t *testing.T) State {
	t.Helper()
	s, err := New(Settings{
		Players: []Player{{ID: "p1", Name: "Ann"}, {ID: "p2", Name: "Bob"}},
		Graph:   testMap(t),
		Seed:    42,
	})
	if err != nil {
		t.Fatalf("New err=%v", err)
	}
	return s
}

func must(t *testing.T, s State, cmd Command) State {
	t.Helper()
	next, err := Apply(s, cmd)
	if err != nil {
		t.Fatalf("%s by %s err=%v", cmd.Name(), cmd.Actor(), err)
	}
	return next
}

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	if !errors.Is(err, rules.ErrRuleViolation) {
		t.Fatalf("期望规则错误, got=%v", err)
	}
	return errx.ReasonOf(err)
}

func expectIllegal(t *testing.T, err error, expected string) {
	t.Helper()
	if !errors.Is(err, rules.ErrIllegalState) {
		t.Fatalf("期望状态错误, got=%v", err)
	}
	if got := rules.ExpectedOf(err); got != expected {
		t.Fatalf("expected=%q, want %q", got, expected)
	}
}

func balance(t *testing.T, s State, id PlayerID) int {
	t.Helper()
	acc, ok := s.Account(id)
	if !ok {
		t.Fatalf("没有玩家 %s", id)
	}
	return acc.Balance()
}

func prices(as []asset.Asset) []int {
	out := make([]int, 0, len(as))
	for _, a := range as {
		out = append(out, a.Price)
	}
	return out
}

func TestNew_开局状态(t *testing.T) {
	s := twoPlayers(t)

	if s.Step() != 1 || s.Round() != 1 {
		t.Fatalf("step=%d round=%d", s.Step(), s.Round())
	}
	if _, ok := s.Phase().(AuctionPhase); !ok {
		t.Fatalf("phase=%v", s.Phase().Name())
	}
	order := s.PlayOrder()
	if cur, _ := s.CurrentPlayer(); cur != order[0] {
		t.Fatalf("第一位开拍人应为 %s, got=%s", order[0], cur)
	}
	if got := prices(s.AssetMarket().Current()); !slices.Equal(got, []int{3, 4, 5, 6}) {
		t.Fatalf("current=%v", got)
	}
	if top, _ := s.AssetMarket().Deck().Top(); top.Price != 13 {
		t.Fatalf("堆顶应为 13, got=%d", top.Price)
	}
	if balance(t, s, "p1") != 50 {
		t.Fatalf("开局资金 50")
	}

	again := twoPlayers(t)
	if !slices.Equal(again.PlayOrder(), order) || !slices.Equal(prices(again.AssetMarket().Deck().Cards()), prices(s.AssetMarket().Deck().Cards())) {
		t.Fatalf("同一种子应得到同样开局")
	}
}

func TestNew_非法设置(t *testing.T) {
	g := testMap(t)
	_, err := New(Settings{Players: []Player{{ID: "p1"}}, Graph: g})
	if reasonOf(t, err) != rules.ReasonInvalidPlayers.Code {
		t.Fatalf("一人局应失败, got=%v", err)
	}
	_, err = New(Settings{Players: []Player{{ID: "p1"}, {ID: "p1"}}, Graph: g})
	if reasonOf(t, err) != rules.ReasonInvalidPlayers.Code {
		t.Fatalf("重复玩家应失败, got=%v", err)
	}
	_, err = New(Settings{Players: []Player{{ID: "p1"}, {ID: "p2"}}, Graph: testMap(t, "north", "middle")})
	if err == nil || err.Error() != "GAME_RULE_VIOLATION: must play 3 regions" {
		t.Fatalf("两人局要 3 个区域, got=%v", err)
	}
}

func TestAuction_买3出价3后市场右移(t *testing.T) {
	s := twoPlayers(t)
	first := s.PlayOrder()[0]

	s = must(t, s, StartAuction{Player: first, Asset: 3, Bid: 3})
	if got := prices(s.AssetMarket().Current()); !slices.Equal(got, []int{4, 5, 6, 7}) {
		t.Fatalf("current=%v", got)
	}
	if got := prices(s.AssetMarket().Future()); !slices.Equal(got, []int{8, 9, 10, 13}) {
		t.Fatalf("future=%v", got)
	}
	ph := s.Phase().(AuctionPhase)
	if ph.Round == nil || ph.Round.Bid != 3 || ph.Round.Bidder == first {
		t.Fatalf("应轮到另一位出价, round=%+v", ph.Round)
	}
}

func TestAuction_出价校验(t *testing.T) {
	s := twoPlayers(t)
	first, second := s.PlayOrder()[0], s.PlayOrder()[1]

	_, err := Apply(s, StartAuction{Player: second, Asset: 3, Bid: 3})
	expectIllegal(t, err, "turn of "+string(first))

	_, err = Apply(s, StartAuction{Player: first, Asset: 4, Bid: 3})
	if reasonOf(t, err) != rules.ReasonBidTooLow.Code || err.Error() != "GAME_RULE_VIOLATION: bid must be >= 4" {
		t.Fatalf("got=%v", err)
	}
	_, err = Apply(s, StartAuction{Player: first, Asset: 7, Bid: 7})
	if reasonOf(t, err) != rules.ReasonNotInCurrent.Code {
		t.Fatalf("got=%v", err)
	}
	_, err = Apply(s, StartAuction{Player: first, Asset: 3, Bid: 51})
	if reasonOf(t, err) != rules.ReasonBalanceTooLow.Code {
		t.Fatalf("got=%v", err)
	}
	_, err = Apply(s, PassAuction{Player: first})
	if reasonOf(t, err) != rules.ReasonCannotPassFirstRound.Code {
		t.Fatalf("第一轮不能放弃开拍, got=%v", err)
	}
	_, err = Apply(s, PassBid{Player: first})
	expectIllegal(t, err, "auction in progress")

	s = must(t, s, StartAuction{Player: first, Asset: 3, Bid: 5})
	_, err = Apply(s, RaiseBid{Player: second, Bid: 5})
	if reasonOf(t, err) != rules.ReasonBidTooLow.Code || err.Error() != "GAME_RULE_VIOLATION: bid must be >= 6" {
		t.Fatalf("加价必须高于当前出价, got=%v", err)
	}
	_, err = Apply(s, StartAuction{Player: second, Asset: 4, Bid: 4})
	expectIllegal(t, err, "no auction in progress")
}

func TestAuction_持有上限时必须指定替换(t *testing.T) {
	s, err := New(Settings{
		Players: []Player{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
		Graph:   testMap(t),
		Seed:    7,
	})
	if err != nil {
		t.Fatalf("New err=%v", err)
	}
	first := s.PlayOrder()[0]

	acc := account.New(50)
	for _, p := range []int{11, 12, 14} {
		a, _ := asset.Lookup(p)
		acc, _ = acc.AddAsset(a, nil)
	}
	s = s.withAccount(first, acc)

	_, err = Apply(s, StartAuction{Player: first, Asset: 3, Bid: 3})
	if err == nil || err.Error() != "GAME_RULE_VIOLATION: must replace an asset" {
		t.Fatalf("got=%v", err)
	}
	_, err = Apply(s, StartAuction{Player: first, Asset: 3, Bid: 3, Replaces: 15})
	if reasonOf(t, err) != rules.ReasonNotOwned.Code {
		t.Fatalf("替换的电厂必须拥有, got=%v", err)
	}
	if _, err = Apply(s, StartAuction{Player: first, Asset: 3, Bid: 3, Replaces: 11}); err != nil {
		t.Fatalf("指定替换后应成功, err=%v", err)
	}
}

func TestAuction_三人竞拍_出价者依次退出(t *testing.T) {
	s, err := New(Settings{
		Players: []Player{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
		Graph:   testMap(t),
		Seed:    3,
	})
	if err != nil {
		t.Fatalf("New err=%v", err)
	}
	opener := s.PlayOrder()[0]

	s = must(t, s, StartAuction{Player: opener, Asset: 4, Bid: 4})
	bidders := s.Phase().(AuctionPhase).Round.Bidders
	if len(bidders) != 3 {
		t.Fatalf("bidders=%v", bidders)
	}
	// 第二位加价，第三位和开拍人先后退出，第二位成交
	b2, _ := s.CurrentPlayer()
	s = must(t, s, RaiseBid{Player: b2, Bid: 6})
	b3, _ := s.CurrentPlayer()
	s = must(t, s, PassBid{Player: b3})
	if n := len(s.Phase().(AuctionPhase).Round.Bidders); n != 2 {
		t.Fatalf("退出后应剩 2 人, got=%d", n)
	}
	cur, _ := s.CurrentPlayer()
	if cur != opener {
		t.Fatalf("应轮到开拍人, got=%s", cur)
	}
	s = must(t, s, PassBid{Player: opener})

	acc, _ := s.Account(b2)
	if acc.Balance() != 44 || !acc.Owns(4) {
		t.Fatalf("b2 应 6 元买下 4, balance=%d", acc.Balance())
	}
	ph := s.Phase().(AuctionPhase)
	if ph.Round != nil || ph.Opener != opener || slices.Contains(ph.Openers, b2) || len(ph.Closed) != 1 {
		t.Fatalf("别人拍到时开拍人继续开拍, phase=%+v", ph)
	}
}

// playFirstRound 两人局：先手 3 元买 3，后手 4 元买 4。
func playFirstRound(t *testing.T) (State, PlayerID, PlayerID) {
	t.Helper()
	s := twoPlayers(t)
	first, second := s.PlayOrder()[0], s.PlayOrder()[1]

	s = must(t, s, StartAuction{Player: first, Asset: 3, Bid: 3})
	s = must(t, s, PassBid{Player: second})
	if cur, _ := s.CurrentPlayer(); cur != second {
		t.Fatalf("先手拍到后应轮到后手开拍, got=%s", cur)
	}
	s = must(t, s, StartAuction{Player: second, Asset: 4, Bid: 4})
	return s, first, second
}

func TestFirstRound_拍卖结束后重排顺序进入买资源(t *testing.T) {
	s, first, second := playFirstRound(t)

	if _, ok := s.Phase().(ProcurePhase); !ok {
		t.Fatalf("phase=%s", s.Phase().Name())
	}
	// 两人都没有城市，电厂价高者先手
	if got := s.PlayOrder(); !slices.Equal(got, []PlayerID{second, first}) {
		t.Fatalf("order=%v", got)
	}
	if cur, _ := s.CurrentPlayer(); cur != first {
		t.Fatalf("买资源按逆序，应先轮到 %s, got=%s", first, cur)
	}
	if balance(t, s, first) != 47 || balance(t, s, second) != 46 {
		t.Fatalf("balance first=%d second=%d", balance(t, s, first), balance(t, s, second))
	}

	_, err := Apply(s, ConnectLocation{Player: first, Location: "a1"})
	expectIllegal(t, err, "phase BUILD_NETWORK")
}

func TestFullRound_买资源建网结算再回到拍卖(t *testing.T) {
	s, first, second := playFirstRound(t)

	before := s
	s = must(t, s, BuyResource{Player: first, Kind: resource.Oil, Amount: 2})
	if balance(t, s, first) != 41 || balance(t, before, first) != 47 {
		t.Fatalf("两个油 6 元, balance=%d", balance(t, s, first))
	}
	_, err := Apply(s, BuyResource{Player: first, Kind: resource.Oil, Amount: 3})
	if reasonOf(t, err) != rules.ReasonMaxStorage.Code {
		t.Fatalf("超出存储, got=%v", err)
	}
	_, err = Apply(s, BuyResource{Player: first, Kind: "GAS", Amount: 1})
	if reasonOf(t, err) != rules.ReasonUnknownKind.Code {
		t.Fatalf("未知资源, got=%v", err)
	}
	s = must(t, s, PassBuyResources{Player: first})
	s = must(t, s, PassBuyResources{Player: second})

	if _, ok := s.Phase().(BuildPhase); !ok {
		t.Fatalf("phase=%s", s.Phase().Name())
	}
	s = must(t, s, ConnectLocation{Player: first, Location: "a1"})
	// 城市 10 + a1→a2→b1 连线 13
	s = must(t, s, ConnectLocation{Player: first, Location: "b1"})
	if balance(t, s, first) != 41-10-23 {
		t.Fatalf("balance=%d", balance(t, s, first))
	}
	s = must(t, s, PassConnect{Player: first})

	_, err = Apply(s, ConnectLocation{Player: second, Location: "a1"})
	if reasonOf(t, err) != rules.ReasonMaxConnections.Code {
		t.Fatalf("第一阶段每城只能一人, got=%v", err)
	}
	_, err = Apply(s, ConnectLocation{Player: second, Location: "d1"})
	if reasonOf(t, err) != rules.ReasonNotPlayable.Code {
		t.Fatalf("裁掉的区域不可用, got=%v", err)
	}
	_, err = Apply(s, ConnectLocation{Player: second, Location: "zz"})
	if reasonOf(t, err) != rules.ReasonUnknownLocation.Code {
		t.Fatalf("未知城市, got=%v", err)
	}
	s = must(t, s, ConnectLocation{Player: second, Location: "c1"})
	_, err = Apply(s, ConnectLocation{Player: second, Location: "c1"})
	if reasonOf(t, err) != rules.ReasonAlreadyConnected.Code {
		t.Fatalf("重复接入, got=%v", err)
	}
	s = must(t, s, PassConnect{Player: second})

	// 后手没有燃料，直接拿 10；先手是唯一的生产者
	ph, ok := s.Phase().(SettlePhase)
	if !ok || !slices.Equal(ph.Producers, []PlayerID{first}) {
		t.Fatalf("phase=%s producers=%v", s.Phase().Name(), ph.Producers)
	}
	if balance(t, s, second) != 46-10+10 {
		t.Fatalf("second balance=%d", balance(t, s, second))
	}
	_, err = Apply(s, SettleOutput{Player: second})
	expectIllegal(t, err, "settlement pending for "+string(second))
	_, err = Apply(s, SettleOutput{Player: first, Assets: []int{3}, Resources: map[resource.Kind]int{resource.Oil: 1}})
	if reasonOf(t, err) != rules.ReasonNotEnoughResources.Code {
		t.Fatalf("一个油不够, got=%v", err)
	}

	s = must(t, s, SettleOutput{Player: first, Assets: []int{3}, Resources: map[resource.Kind]int{resource.Oil: 2}})
	acc, _ := s.Account(first)
	if acc.Balance() != 8+22 || acc.Resource(resource.Oil) != 0 {
		t.Fatalf("供 1 城得 22, balance=%d oil=%d", acc.Balance(), acc.Resource(resource.Oil))
	}

	if _, ok := s.Phase().(AuctionPhase); !ok || s.Round() != 2 {
		t.Fatalf("phase=%s round=%d", s.Phase().Name(), s.Round())
	}
	if got := s.PlayOrder(); !slices.Equal(got, []PlayerID{first, second}) {
		t.Fatalf("城市多者先手, order=%v", got)
	}
	oil, _ := s.ResourceMarkets().Get(resource.Oil)
	if oil.Available() != 18-2+2 {
		t.Fatalf("两人第一阶段补 2 个油, available=%d", oil.Available())
	}

	// 第二轮两人都放弃开拍，最便宜的电厂被丢弃
	lowest := s.AssetMarket().Current()[0].Price
	s = must(t, s, PassAuction{Player: first})
	s = must(t, s, PassAuction{Player: second})
	if _, ok := s.Phase().(ProcurePhase); !ok {
		t.Fatalf("phase=%s", s.Phase().Name())
	}
	if s.AssetMarket().Contains(lowest) {
		t.Fatalf("无人购买时应丢掉 %d, current=%v", lowest, prices(s.AssetMarket().Current()))
	}
}

func TestEndGame_未达终局城市数不能结束(t *testing.T) {
	s := twoPlayers(t)
	first := s.PlayOrder()[0]
	_, err := Apply(s, EndGame{Player: first})
	if reasonOf(t, err) != rules.ReasonEndNotReached.Code {
		t.Fatalf("got=%v", err)
	}
}

func withConnections(s State, id PlayerID, n int) State {
	for i := 0; i < n; i++ {
		s = s.withOccupant(network.LocationID(100+i), id)
	}
	return s
}

func withAssets(t *testing.T, s State, id PlayerID, balance int, ps ...int) State {
	t.Helper()
	acc := account.New(balance)
	for _, p := range ps {
		a, _ := asset.Lookup(p)
		var err error
		if acc, err = acc.AddAsset(a, nil); err != nil {
			t.Fatalf("AddAsset err=%v", err)
		}
	}
	return s.withAccount(id, acc)
}

func TestEndGame_按供电城市数_余额_城市数决出胜者(t *testing.T) {
	s := twoPlayers(t)
	first, second := s.PlayOrder()[0], s.PlayOrder()[1]

	// first 接 21 城但只能供 1 城；second 接 3 城、能供 3 城
	s = withConnections(s, first, 21)
	s = withConnections(s, second, 3)
	s = withAssets(t, s, first, 100, 13)
	s = withAssets(t, s, second, 5, 18, 22)

	ended := must(t, s, EndGame{Player: first})
	if w, _ := ended.Winner(); w != second {
		t.Fatalf("winner=%s", w)
	}
	if _, err := Apply(ended, PassAuction{Player: first}); !errors.Is(err, rules.ErrIllegalState) {
		t.Fatalf("结束后不接受命令, got=%v", err)
	}
	if v := Project(ended); v.Phase != PhaseEnded || v.Winner != second {
		t.Fatalf("view=%+v", v)
	}
	st := ended.Standings()
	if len(st) != 2 || st[0].Player != second || st[0].Powered != 3 || st[1].Powered != 1 || st[1].Connected != 21 {
		t.Fatalf("standings=%+v", st)
	}
}

func TestEndGame_完全平局时座次靠前者胜(t *testing.T) {
	s := twoPlayers(t)
	s = withConnections(s, "p1", 21)
	s = withConnections(s, "p2", 21)
	s = withAssets(t, s, "p1", 10, 13)
	s = withAssets(t, s, "p2", 10, 13)

	cur, _ := s.CurrentPlayer()
	ended := must(t, s, EndGame{Player: cur})
	if w, _ := ended.Winner(); w != "p1" {
		t.Fatalf("winner=%s", w)
	}
}

func TestApply_未知玩家与空命令(t *testing.T) {
	s := twoPlayers(t)
	if _, err := Apply(s, PassBid{Player: "ghost"}); reasonOf(t, err) != rules.ReasonInvalidPlayers.Code {
		t.Fatalf("got=%v", err)
	}
	if _, err := Apply(s, nil); reasonOf(t, err) != rules.ReasonInvalidCommand.Code {
		t.Fatalf("got=%v", err)
	}
}

func TestPayment_超过20城按20算(t *testing.T) {
	if Payment(0) != 10 || Payment(1) != 22 || Payment(20) != 150 || Payment(35) != 150 {
		t.Fatalf("payments 表不对")
	}
	if LocationCost(0) != 10 || LocationCost(1) != 15 || LocationCost(2) != 20 {
		t.Fatalf("城市费不对")
	}
}

// passBuild 让所有玩家依次放弃建网，结束本轮建网阶段。
func passBuild(t *testing.T, s State) State {
	t.Helper()
	s = s.withPhase(BuildPhase{Remaining: reversed(s.order)})
	for _, id := range reversed(s.order) {
		s = must(t, s, PassConnect{Player: id})
	}
	return s
}

func TestBuild_领先者达到门槛进入第二阶段(t *testing.T) {
	s := twoPlayers(t)
	first := s.PlayOrder()[0]
	s = withConnections(s, first, 10)

	s = passBuild(t, s)
	if s.Step() != 2 {
		t.Fatalf("10 城应进入第二阶段, step=%d", s.Step())
	}
	// 没人能发电，结算直接结束，回到拍卖
	if _, ok := s.Phase().(AuctionPhase); !ok || s.Round() != 2 {
		t.Fatalf("phase=%s round=%d", s.Phase().Name(), s.Round())
	}
	for _, a := range s.AssetMarket().Current() {
		if a.Price <= 10 {
			t.Fatalf("不超过领先城市数的电厂应移除, current=%v", prices(s.AssetMarket().Current()))
		}
	}
	if len(s.AssetMarket().Future()) == 0 {
		t.Fatalf("第二阶段不应合并为一排")
	}
}

func TestBuild_未达门槛保持第一阶段(t *testing.T) {
	s := twoPlayers(t)
	s = withConnections(s, s.PlayOrder()[0], 9)

	s = passBuild(t, s)
	if s.Step() != 1 {
		t.Fatalf("step=%d", s.Step())
	}
}

func TestAuction_第二阶段市场合并后进入第三阶段(t *testing.T) {
	s := twoPlayers(t)
	s.step = 2
	s.round = 2
	s.plants = s.plants.CollapseToSingleTier()
	before := len(s.AssetMarket().Current())
	lowest := s.AssetMarket().Current()[0].Price

	for _, id := range s.PlayOrder() {
		s = must(t, s, PassAuction{Player: id})
	}
	if s.Step() != 3 {
		t.Fatalf("市场合并后应进入第三阶段, step=%d", s.Step())
	}
	if got := len(s.AssetMarket().Current()); got != before-1 {
		t.Fatalf("进入第三阶段少一座电厂, before=%d after=%d", before, got)
	}
	if s.AssetMarket().Contains(lowest) || len(s.AssetMarket().Future()) != 0 {
		t.Fatalf("current=%v future=%v", prices(s.AssetMarket().Current()), prices(s.AssetMarket().Future()))
	}
}

func TestSettle_第三阶段丢掉最便宜的电厂(t *testing.T) {
	s := twoPlayers(t)
	s.step = 3
	s.plants = s.plants.CollapseToSingleTier()
	before := s.AssetMarket().Current()

	s = passBuild(t, s)
	after := s.AssetMarket().Current()
	if s.Step() != 3 || s.Round() != 2 {
		t.Fatalf("step=%d round=%d", s.Step(), s.Round())
	}
	if len(after) != len(before) || s.AssetMarket().Contains(before[0].Price) {
		t.Fatalf("before=%v after=%v", prices(before), prices(after))
	}
	if len(s.AssetMarket().Future()) != 0 {
		t.Fatalf("第三阶段只有一排, future=%v", prices(s.AssetMarket().Future()))
	}
}

func TestAuction_放弃开拍者不参与别人的竞拍(t *testing.T) {
	s, err := New(Settings{
		Players: []Player{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
		Graph:   testMap(t),
		Seed:    11,
	})
	if err != nil {
		t.Fatalf("New err=%v", err)
	}
	s.round = 2
	order := s.PlayOrder()

	s = must(t, s, PassAuction{Player: order[0]})
	if cur, _ := s.CurrentPlayer(); cur != order[1] {
		t.Fatalf("应轮到 %s 开拍, got=%s", order[1], cur)
	}
	s = must(t, s, StartAuction{Player: order[1], Asset: 3, Bid: 3})

	round := s.Phase().(AuctionPhase).Round
	if round == nil || len(round.Bidders) != 2 || slices.Contains(round.Bidders, order[0]) {
		t.Fatalf("bidders=%+v", round)
	}
	if round.Bidder != order[2] {
		t.Fatalf("应轮到 %s 出价, got=%s", order[2], round.Bidder)
	}
}

func TestEndGame_竞拍进行中不能结束(t *testing.T) {
	s := twoPlayers(t)
	first := s.PlayOrder()[0]
	s = withConnections(s, first, 21)

	s = must(t, s, StartAuction{Player: first, Asset: 3, Bid: 3})
	bidder, _ := s.CurrentPlayer()
	_, err := Apply(s, EndGame{Player: bidder})
	expectIllegal(t, err, "no auction in progress")
}
