package dc

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"PowerLine/internal/game/entity"
	"PowerLine/internal/game/service/port"
	"PowerLine/modules/kit/logx"
)

const (
	defaultFlushEvery = 1000 * time.Millisecond
	retryBackoff      = 200 * time.Millisecond
)

// Loader 从存档恢复一局，一般是 GameService.Restore。
type Loader func(ctx context.Context, id entity.GameID) (*entity.Game, error)

// GameDC 是单局的写回缓存：actor 内同步生成快照，后台协程异步写库，
// 只保留最新版本，写失败时重排。
type GameDC struct {
	repo       port.GameRepository
	load       Loader
	log        logx.Logger
	entity     *entity.Game
	flushEvery time.Duration

	mu      sync.Mutex
	pending *entity.GamePersistSnapshot
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewGameDC(repo port.GameRepository, load Loader, flushEvery time.Duration, log logx.Logger) *GameDC {
	if flushEvery <= 0 {
		flushEvery = defaultFlushEvery
	}
	if log == nil {
		log = logx.Nop()
	}
	d := &GameDC{
		repo:       repo,
		load:       load,
		log:        log,
		flushEvery: flushEvery,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

func (d *GameDC) Load(ctx context.Context, id entity.GameID) (*entity.Game, error) {
	if d.load == nil {
		return nil, errors.New("game loader is nil")
	}
	g, err := d.load(ctx, id)
	if err != nil {
		return nil, err
	}
	d.entity = g
	return g, nil
}

// Flush 有改动时生成下一版快照交给写协程。
func (d *GameDC) Flush(ctx context.Context) {
	_ = ctx
	if !d.IsDirty() {
		return
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return
	}
	d.enqueueLatest(s)
}

func (d *GameDC) IsDirty() bool {
	return d.entity != nil && d.entity.Dirty()
}

func (d *GameDC) Entity() *entity.Game {
	return d.entity
}

func (d *GameDC) FlushEvery() time.Duration {
	return d.flushEvery
}

// Close 刷最后一次并等写协程把积压写完。
func (d *GameDC) Close(ctx context.Context) error {
	d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// buildNextSnapshot 版本号取命令日志长度，重启后也单调不减。
func (d *GameDC) buildNextSnapshot() (*entity.GamePersistSnapshot, bool) {
	s, ok := d.entity.BuildPersistSnapshot(uint64(d.entity.LogLen()))
	if !ok {
		return nil, false
	}
	d.entity.ClearDirty()
	return s, true
}

func (d *GameDC) enqueueLatest(s *entity.GamePersistSnapshot) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *GameDC) popPending() *entity.GamePersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

// requeue 失败的快照放回去；期间若已有更新版本则丢弃旧的。
func (d *GameDC) requeue(s *entity.GamePersistSnapshot) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	return !d.closed
}

func (d *GameDC) writerLoop() {
	defer close(d.done)
	for {
		select {
		case <-d.wake:
			d.consumePending(false)
		case <-d.stop:
			d.consumePending(true)
			return
		}
	}
}

// consumePending 关闭阶段只重试有限次，避免存储挂掉时卡住退出。
func (d *GameDC) consumePending(closing bool) {
	const closingRetries = 3
	failures := 0
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		err := d.repo.Save(context.Background(), s)
		if err == nil {
			failures = 0
			continue
		}
		failures++
		d.log.Error("game snapshot save failed",
			zap.Int64("game_id", int64(s.Record.ID)),
			zap.Uint64("version", s.Version),
			zap.Error(err),
		)
		if !d.requeue(s) && (!closing || failures >= closingRetries) {
			return
		}
		time.Sleep(retryBackoff)
	}
}
