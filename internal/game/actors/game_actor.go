package actors

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"PowerLine/internal/game/dc"
	"PowerLine/internal/game/entity"
	"PowerLine/internal/game/service"
	"PowerLine/internal/game/service/port"
	"PowerLine/modules/kit/errx"
	"PowerLine/modules/kit/logx"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

const closeTimeout = 3 * time.Second

// Deps 是 game actor 需要的外部依赖，由 runtime 注入。
type Deps struct {
	Service     *service.GameService
	Repo        port.GameRepository
	Notifier    port.Notifier
	FlushEvery  time.Duration
	IdleTimeout time.Duration
	Log         logx.Logger
}

// GameActor 串行处理一局的所有命令，持有最新状态并定时写回。
type GameActor struct {
	state      State
	gameID     entity.GameID
	service    *service.GameService
	notifier   port.Notifier
	idle       time.Duration
	dc         *dc.GameDC
	entity     *entity.Game
	loadErr    error
	dispatcher *Dispatcher
	flushStop  chan struct{}
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

func NewGameActor(id entity.GameID, deps Deps) *GameActor {
	log := deps.Log
	if log != nil {
		log = log.With(zap.Int64("game_id", int64(id)))
	}
	return &GameActor{
		state:      None,
		gameID:     id,
		service:    deps.Service,
		notifier:   deps.Notifier,
		idle:       deps.IdleTimeout,
		dc:         dc.NewGameDC(deps.Repo, deps.Service.Restore, deps.FlushEvery, log),
		dispatcher: NewDispatcher(),
	}
}

func (g *GameActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		g.state = Init
		g.init(ctx)
	case *actor.Stopping:
		g.stopFlushLoop()
		g.closeDC(ctx)
		g.state = Stopping
	case *actor.Stopped:
		g.stopFlushLoop()
		g.state = Offline
	case *actor.Restarting:
		// 重启会换一个新实例，旧缓存先落盘
		g.stopFlushLoop()
		g.closeDC(ctx)
		g.state = Init
	case *actor.ReceiveTimeout:
		// 长时间没有请求，交给 Stopping 落盘后释放
		ctx.Stop(ctx.Self())
	case flushTick:
		if g.state == Online {
			g.dc.Flush(context.Background())
		}
	case GameMessage:
		if g.state != Online {
			err := g.loadErr
			if err == nil {
				err = errx.ErrUnavailable.WithMsg("game not online")
			}
			ctx.Respond(&Reply{Err: err})
			if g.loadErr != nil {
				// 加载失败的 actor 回完错误就退出，manager 收到 Terminated 后移除
				ctx.Stop(ctx.Self())
			}
			return
		}
		g.dispatcher.Dispatch(ctx, g, msg)
	}
}

func (g *GameActor) init(ctx actor.Context) {
	e, err := g.dc.Load(context.Background(), g.gameID)
	if err != nil {
		g.state = Offline
		g.loadErr = err
		return
	}
	g.entity = e
	g.state = Online
	if g.idle > 0 {
		ctx.SetReceiveTimeout(g.idle)
	}
	g.startFlushLoop(ctx)
}

func (g *GameActor) closeDC(ctx actor.Context) {
	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := g.dc.Close(closeCtx); err != nil {
		ctx.Logger().Error("game dc close failed", "game_id", int64(g.gameID), "err", err)
	}
}

func (g *GameActor) startFlushLoop(ctx actor.Context) {
	if g.flushStop != nil {
		return
	}
	every := g.dc.FlushEvery()
	g.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(g.flushStop)
}

func (g *GameActor) stopFlushLoop() {
	if g.flushStop == nil {
		return
	}
	close(g.flushStop)
	g.flushStop = nil
}
