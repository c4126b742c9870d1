package entity

import (
	"slices"
	"strconv"
	"time"

	"PowerLine/internal/game/engine"
)

type GameID int64

// Record 是一局游戏的持久化形态：开局参数加命令日志，状态由重放得到。
type Record struct {
	ID        GameID            `json:"id"`
	MapName   string            `json:"map"`
	Regions   []string          `json:"regions"`
	Players   []engine.Player   `json:"players"`
	Seed      uint64            `json:"seed"`
	Log       []engine.Envelope `json:"log"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Game 是内存中的对局：当前状态、命令日志和脏标记，只在所属 actor 内访问。
type Game struct {
	record Record
	state  engine.State
	dirty  bool
}

// NewGame 用已经构建好的初始（或重放后的）状态创建对局。
func NewGame(record Record, state engine.State) *Game {
	record.Regions = slices.Clone(record.Regions)
	record.Players = slices.Clone(record.Players)
	record.Log = slices.Clone(record.Log)
	return &Game{record: record, state: state}
}

func (g *Game) ID() GameID {
	return g.record.ID
}

func (g *Game) State() engine.State {
	return g.state
}

func (g *Game) View() engine.View {
	return engine.Project(g.state)
}

func (g *Game) Ended() bool {
	_, ok := g.state.Winner()
	return ok
}

func (g *Game) LogLen() int {
	return len(g.record.Log)
}

// Apply 执行一条命令；成功时追加到日志并标脏，失败时状态不变。
func (g *Game) Apply(cmd engine.Command, now time.Time) error {
	next, err := engine.Apply(g.state, cmd)
	if err != nil {
		return err
	}
	env, err := engine.EnvelopeOf(cmd)
	if err != nil {
		return err
	}
	g.state = next
	g.record.Log = append(g.record.Log, env)
	g.record.UpdatedAt = now
	g.dirty = true
	return nil
}

func (g *Game) MarkDirty() {
	g.dirty = true
}

func (g *Game) Dirty() bool {
	return g.dirty
}

func (g *Game) ClearDirty() {
	g.dirty = false
}

// Record 返回持久化形态的拷贝。
func (g *Game) Record() Record {
	r := g.record
	r.Regions = slices.Clone(r.Regions)
	r.Players = slices.Clone(r.Players)
	r.Log = slices.Clone(r.Log)
	return r
}

func (g *Game) BuildPersistSnapshot(version uint64) (*GamePersistSnapshot, bool) {
	if g == nil || !g.Dirty() {
		return nil, false
	}
	return &GamePersistSnapshot{
		Version: version,
		Record:  g.Record(),
		View:    g.View(),
	}, true
}

func (id GameID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
