package actor

import (
	"context"
	"errors"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"

	"PowerLine/internal/game/actors"
	"PowerLine/internal/game/engine"
	"PowerLine/internal/game/entity"
	"PowerLine/modules/kit/errx"
	"PowerLine/modules/kit/tracex"
)

const defaultAskTimeout = 3 * time.Second

// Runtime 把 HTTP/WS 请求投递给对局 actor，并把回复还原成返回值。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(deps actors.Deps, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(deps)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
	}
}

// Apply 对某一局执行一条命令，返回执行后的投影。
func (r *Runtime) Apply(ctx context.Context, id entity.GameID, env engine.Envelope) (engine.View, error) {
	msg := &actors.ApplyCommand{
		GameBaseMessage: baseMessage(ctx, id),
		Envelope:        env,
	}
	return r.ask(ctx, msg)
}

// View 读取某一局当前的投影，没在内存里就先从存档恢复。
func (r *Runtime) View(ctx context.Context, id entity.GameID) (engine.View, error) {
	msg := &actors.GetView{GameBaseMessage: baseMessage(ctx, id)}
	return r.ask(ctx, msg)
}

func baseMessage(ctx context.Context, id entity.GameID) actors.GameBaseMessage {
	traceID, _ := tracex.TraceIDFrom(ctx)
	return actors.GameBaseMessage{Game: id, TraceID: traceID}
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		// 等子 actor 都走完 Stopping，写回缓存才会落盘
		_ = r.root.StopFuture(r.manager).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) ask(ctx context.Context, msg actors.GameMessage) (engine.View, error) {
	res, err := r.request(r.manager, msg, r.timeoutFromContext(ctx))
	if err != nil {
		return engine.View{}, err
	}
	reply, ok := res.(*actors.Reply)
	if !ok || reply == nil {
		return engine.View{}, errx.ErrInternal.WithMsgf("unexpected reply %T", res)
	}
	if reply.Err != nil {
		return engine.View{}, reply.Err
	}
	return reply.View, nil
}

func (r *Runtime) request(pid *protoactor.PID, msg any, timeout time.Duration) (any, error) {
	if r == nil || r.root == nil {
		return nil, errx.ErrUnavailable.WithMsg("actor runtime 未初始化")
	}
	if pid == nil {
		return nil, errx.ErrUnavailable.WithMsg("actor pid 为空")
	}

	future := r.root.RequestFuture(pid, msg, timeout)
	res, err := future.Result()
	if err != nil {
		if errors.Is(err, protoactor.ErrTimeout) {
			return nil, errx.ErrTimeout.WithCause(err)
		}
		return nil, errx.ErrUnavailable.WithMsg("actor 请求失败").WithCause(err)
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}
