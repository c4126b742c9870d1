package actors

import (
	"github.com/asynkron/protoactor-go/actor"

	"PowerLine/internal/game/entity"
	"PowerLine/modules/kit/errx"
)

// ManagerActor 按 GameID 把请求转发给对应的 game actor，没有就拉起一个。
type ManagerActor struct {
	deps       Deps
	gameActors map[entity.GameID]*actor.PID
}

func NewManagerActor(deps Deps) *ManagerActor {
	return &ManagerActor{
		deps:       deps,
		gameActors: make(map[entity.GameID]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Terminated:
		for id, pid := range m.gameActors {
			if pid.Equal(msg.Who) {
				delete(m.gameActors, id)
				break
			}
		}
	case GameMessage:
		if msg.GameID() <= 0 {
			ctx.Respond(&Reply{Err: errx.ErrReqParamERR.WithMsg("invalid game id")})
			return
		}
		ctx.Forward(m.getOrSpawn(ctx, msg.GameID()))
	}
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, id entity.GameID) *actor.PID {
	if pid, ok := m.gameActors[id]; ok && pid != nil {
		return pid
	}
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewGameActor(id, m.deps)
	})
	pid := ctx.Spawn(props)
	m.gameActors[id] = pid
	return pid
}
