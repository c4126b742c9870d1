package actors

import (
	"reflect"

	"github.com/asynkron/protoactor-go/actor"

	"PowerLine/modules/kit/errx"
)

type Dispatcher struct {
	handlers map[reflect.Type]func(ctx actor.Context, g *GameActor, req GameMessage)
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]func(ctx actor.Context, g *GameActor, req GameMessage)),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, GH.HandleApplyCommand)
	register(d, GH.HandleGetView)
}

func register[Req GameMessage](d *Dispatcher, fn func(ctx actor.Context, g *GameActor, req Req)) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	d.handlers[reqType] = func(ctx actor.Context, g *GameActor, req GameMessage) {
		fn(ctx, g, req.(Req))
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, g *GameActor, req GameMessage) {
	h, ok := d.handlers[reflect.TypeOf(req)]
	if !ok {
		ctx.Respond(&Reply{Err: errx.ErrInternal.WithMsgf("no handler for %T", req)})
		return
	}
	h(ctx, g, req)
}
