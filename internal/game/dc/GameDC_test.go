package dc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"PowerLine/internal/game/engine"
	"PowerLine/internal/game/entity"
	"PowerLine/internal/game/network"
)

type flakyRepo struct {
	mu       sync.Mutex
	failures int
	saved    []uint64
}

func (r *flakyRepo) Load(ctx context.Context, id entity.GameID) (*entity.Record, error) {
	return nil, entity.ErrGameNotFound
}

func (r *flakyRepo) Save(ctx context.Context, s *entity.GamePersistSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return errors.New("db down")
	}
	r.saved = append(r.saved, s.Version)
	return nil
}

func (r *flakyRepo) versions() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint64(nil), r.saved...)
}

func testGame(t *testing.T) *entity.Game {
	t.Helper()
	b := network.NewBuilder()
	x := b.AddLocation("x", b.AddRegion("r1"))
	y := b.AddLocation("y", b.AddRegion("r2"))
	z := b.AddLocation("z", b.AddRegion("r3"))
	b.Connect(x, y, 3)
	b.Connect(y, z, 4)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("build err=%v", err)
	}
	players := []engine.Player{{ID: "p1"}, {ID: "p2"}}
	st, err := engine.New(engine.Settings{Players: players, Graph: g, Seed: 1})
	if err != nil {
		t.Fatalf("new err=%v", err)
	}
	return entity.NewGame(entity.Record{ID: 5, Players: players}, st)
}

func TestGameDC_写失败重试_关闭前写完(t *testing.T) {
	repo := &flakyRepo{failures: 2}
	game := testGame(t)
	d := NewGameDC(repo, func(ctx context.Context, id entity.GameID) (*entity.Game, error) {
		return game, nil
	}, time.Second, nil)

	g, err := d.Load(context.Background(), 5)
	if err != nil || g != game {
		t.Fatalf("load g=%v err=%v", g, err)
	}
	d.Flush(context.Background())
	if len(repo.versions()) != 0 {
		t.Fatalf("未改动时不应写库")
	}

	cur, _ := g.State().CurrentPlayer()
	if err = g.Apply(engine.StartAuction{Player: cur, Asset: 3, Bid: 3}, time.Now()); err != nil {
		t.Fatalf("apply err=%v", err)
	}
	d.Flush(context.Background())
	if d.IsDirty() {
		t.Fatalf("生成快照后应清脏")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = d.Close(ctx); err != nil {
		t.Fatalf("close err=%v", err)
	}
	got := repo.versions()
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("saved=%v", got)
	}
}

func TestGameDC_加载失败透传错误(t *testing.T) {
	d := NewGameDC(&flakyRepo{}, func(ctx context.Context, id entity.GameID) (*entity.Game, error) {
		return nil, entity.ErrGameNotFound
	}, 0, nil)
	defer d.Close(context.Background())

	if _, err := d.Load(context.Background(), 1); !errors.Is(err, entity.ErrGameNotFound) {
		t.Fatalf("err=%v", err)
	}
	if d.FlushEvery() != defaultFlushEvery {
		t.Fatalf("flushEvery=%v", d.FlushEvery())
	}
}
