package actors

import (
	"context"

	"github.com/asynkron/protoactor-go/actor"

	"PowerLine/modules/kit/tracex"
)

type GameHandler struct{}

var GH = &GameHandler{}

func (h *GameHandler) HandleApplyCommand(ctx actor.Context, g *GameActor, req *ApplyCommand) {
	c := requestContext(req.GameBaseMessage)
	view, err := g.service.Apply(c, g.entity, req.Envelope)
	if err != nil {
		ctx.Respond(&Reply{Err: err})
		return
	}
	ctx.Respond(&Reply{View: view})
	if g.notifier != nil {
		g.notifier.Publish(g.entity.ID(), view)
	}
	// 结束的对局立刻落盘
	if g.entity.Ended() {
		g.dc.Flush(c)
	}
}

func (h *GameHandler) HandleGetView(ctx actor.Context, g *GameActor, req *GetView) {
	ctx.Respond(&Reply{View: g.entity.View()})
}

func requestContext(m GameBaseMessage) context.Context {
	c := tracex.WithGameID(context.Background(), m.Game.String())
	if m.TraceID != "" {
		c = tracex.WithTraceID(c, m.TraceID)
	}
	return tracex.WithSpanID(c, "game")
}
