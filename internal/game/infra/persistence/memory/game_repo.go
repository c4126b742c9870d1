package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"PowerLine/internal/game/entity"
)

// GameRepository 进程内存档，persistence.driver=memory 时使用，也给测试用。
type GameRepository struct {
	mu    sync.RWMutex
	games map[entity.GameID]*entity.GamePersistSnapshot
}

func NewGameRepository() *GameRepository {
	return &GameRepository{games: make(map[entity.GameID]*entity.GamePersistSnapshot)}
}

func (r *GameRepository) Load(ctx context.Context, id entity.GameID) (*entity.Record, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.games[id]
	if !ok {
		return nil, entity.ErrGameNotFound.WithData("game_id", id)
	}
	rec := s.Record
	rec.Log = slices.Clone(rec.Log)
	return &rec, nil
}

// Save 旧版本快照不覆盖新版本。
func (r *GameRepository) Save(ctx context.Context, s *entity.GamePersistSnapshot) error {
	_ = ctx
	if s == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.games[s.Record.ID]; ok && cur.Version > s.Version {
		return nil
	}
	cp := *s
	r.games[s.Record.ID] = &cp
	return nil
}

// Snapshot 返回最近一次保存的快照。
func (r *GameRepository) Snapshot(id entity.GameID) (*entity.GamePersistSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.games[id]
	return s, ok
}

type ResultRepository struct {
	mu      sync.Mutex
	results []entity.Result
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{}
}

func (r *ResultRepository) SaveResult(ctx context.Context, res entity.Result) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
	return nil
}

func (r *ResultRepository) TopWinners(ctx context.Context, limit int) ([]entity.WinCount, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	byPlayer := make(map[string]*entity.WinCount)
	for _, res := range r.results {
		id := string(res.Winner)
		wc := byPlayer[id]
		if wc == nil {
			wc = &entity.WinCount{PlayerID: id}
			byPlayer[id] = wc
		}
		wc.PlayerName = max(wc.PlayerName, res.Names[res.Winner])
		wc.Wins++
	}
	out := make([]entity.WinCount, 0, len(byPlayer))
	for _, wc := range byPlayer {
		out = append(out, *wc)
	}
	slices.SortFunc(out, func(a, b entity.WinCount) int {
		if a.Wins != b.Wins {
			return b.Wins - a.Wins
		}
		return strings.Compare(a.PlayerID, b.PlayerID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
