package entity

import (
	"errors"
	"testing"
	"time"

	"PowerLine/internal/game/engine"
	"PowerLine/internal/game/network"
	"PowerLine/internal/game/rules"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	b := network.NewBuilder()
	var prev network.LocationID = -1
	for i, name := range []string{"r1", "r2", "r3"} {
		r := b.AddRegion(name)
		loc := b.AddLocation(string(rune('a'+i)), r)
		if prev >= 0 {
			b.Connect(prev, loc, 5)
		}
		prev = loc
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("build err=%v", err)
	}
	players := []engine.Player{{ID: "p1", Name: "Ann"}, {ID: "p2", Name: "Bob"}}
	st, err := engine.New(engine.Settings{Players: players, Graph: g, Seed: 7})
	if err != nil {
		t.Fatalf("new err=%v", err)
	}
	return NewGame(Record{ID: 1, Players: players, Seed: 7}, st)
}

func TestGame_Apply成功追加日志并标脏(t *testing.T) {
	g := newTestGame(t)
	cur, _ := g.State().CurrentPlayer()
	now := time.Unix(100, 0)
	if err := g.Apply(engine.StartAuction{Player: cur, Asset: 3, Bid: 3}, now); err != nil {
		t.Fatalf("apply err=%v", err)
	}
	if g.LogLen() != 1 || !g.Dirty() || !g.Record().UpdatedAt.Equal(now) {
		t.Fatalf("log=%d dirty=%v", g.LogLen(), g.Dirty())
	}
	if g.Record().Log[0].Name != engine.CmdStartAuction {
		t.Fatalf("log=%+v", g.Record().Log)
	}

	s, ok := g.BuildPersistSnapshot(3)
	if !ok || s.Version != 3 || len(s.Record.Log) != 1 || s.View.Phase != engine.PhaseAuction {
		t.Fatalf("snapshot=%+v ok=%v", s, ok)
	}
	g.ClearDirty()
	if _, ok = g.BuildPersistSnapshot(4); ok {
		t.Fatalf("未标脏时不应产生快照")
	}
}

func TestGame_Apply失败不改变状态(t *testing.T) {
	g := newTestGame(t)
	before := g.State()
	cur, _ := g.State().CurrentPlayer()
	err := g.Apply(engine.StartAuction{Player: cur, Asset: 3, Bid: 2}, time.Now())
	if !errors.Is(err, rules.ErrRuleViolation) {
		t.Fatalf("err=%v", err)
	}
	if g.LogLen() != 0 || g.Dirty() {
		t.Fatalf("失败的命令不应入日志")
	}
	if after, _ := g.State().CurrentPlayer(); after != cur || g.State().Round() != before.Round() {
		t.Fatalf("状态不应变化")
	}
}
