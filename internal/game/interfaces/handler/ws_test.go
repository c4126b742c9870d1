package handler

import (
	"sync"
	"testing"

	"PowerLine/internal/game/engine"
	"PowerLine/internal/game/entity"
	"PowerLine/internal/shared/session"
	"PowerLine/internal/shared/transport"
	"PowerLine/internal/shared/transport/ws"
	"PowerLine/modules/kit/logx"
)

type memConn struct {
	mu     sync.Mutex
	props  map[string]any
	pushed []string
	done   chan struct{}
}

func newMemConn() *memConn {
	return &memConn{props: make(map[string]any), done: make(chan struct{})}
}

func (c *memConn) SetProperty(k string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.props[k] = v
}

func (c *memConn) GetProperty(k string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.props[k]
}

func (c *memConn) RemoveProperty(k string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.props, k)
}

func (c *memConn) Push(name string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushed = append(c.pushed, name)
}

func (c *memConn) Addr() string          { return "mem" }
func (c *memConn) Close()                {}
func (c *memConn) Done() <-chan struct{} { return c.done }

func newWsRouter(rt *fakeRuntime, hub *session.Hub) *ws.Router {
	r := ws.NewRouter(logx.Nop())
	game := NewGame(nil, rt, nil, stubVerify, hub, nil, logx.Nop())
	NewWsHandler(game).RegisterRoutes(r)
	return r
}

func wsCall(r *ws.Router, conn ws.WSConn, name string, msg any) *ws.RespBody {
	req := &ws.WsMsgReq{Body: &ws.ReqBody{Seq: 1, Name: name, Msg: msg}, Conn: conn}
	resp := &ws.WsMsgResp{Body: &ws.RespBody{Seq: 1, Name: name}}
	r.Dispatch(req, resp)
	return resp.Body
}

func TestWsHandler_Watch后命令可省略gameId(t *testing.T) {
	rt := &fakeRuntime{view: engine.View{Round: 1}}
	hub := session.NewHub()
	r := newWsRouter(rt, hub)
	conn := newMemConn()

	if got := wsCall(r, conn, "game.watch", map[string]any{"gameId": "7"}); got.Code != transport.OK {
		t.Fatalf("watch resp=%+v", got)
	}
	if hub.Watchers(7) != 1 {
		t.Fatalf("watchers=%d", hub.Watchers(7))
	}

	got := wsCall(r, conn, "game."+engine.CmdBuyResource, map[string]any{
		"token":  "7:p1",
		"params": map[string]any{"kind": "coal", "amount": float64(2)},
	})
	if got.Code != transport.OK {
		t.Fatalf("resp=%+v", got)
	}
	if rt.lastID != 7 || rt.lastEnv.Player != "p1" || rt.lastEnv.Name != engine.CmdBuyResource {
		t.Fatalf("id=%d env=%+v", rt.lastID, rt.lastEnv)
	}
	if len(rt.lastEnv.Params) == 0 {
		t.Fatalf("期望带上参数")
	}
}

func TestWsHandler_命令令牌不属于本局(t *testing.T) {
	rt := &fakeRuntime{}
	r := newWsRouter(rt, session.NewHub())

	got := wsCall(r, newMemConn(), "game."+engine.CmdPassBid, map[string]any{"gameId": "7", "token": "9:p1"})
	if got.Code != transport.SessionInvalid {
		t.Fatalf("resp=%+v", got)
	}
	got = wsCall(r, newMemConn(), "game."+engine.CmdPassBid, map[string]any{"token": "7:p1"})
	if got.Code != transport.InvalidParam {
		t.Fatalf("未观看也没带 gameId 时应为参数错误, resp=%+v", got)
	}
}

func TestViewPublisher_推送给观看连接(t *testing.T) {
	hub := session.NewHub()
	conn := newMemConn()
	hub.Watch(3, conn)

	NewViewPublisher(hub).Publish(entity.GameID(3), engine.View{})
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if len(conn.pushed) != 1 || conn.pushed[0] != StateMsg {
		t.Fatalf("pushed=%v", conn.pushed)
	}
}

func TestWsHandler_Unwatch_停止推送(t *testing.T) {
	hub := session.NewHub()
	r := newWsRouter(&fakeRuntime{}, hub)
	conn := newMemConn()

	wsCall(r, conn, "game.watch", map[string]any{"gameId": "7"})
	if got := wsCall(r, conn, "game.unwatch", nil); got.Code != transport.OK {
		t.Fatalf("resp=%+v", got)
	}
	if hub.Watchers(7) != 0 || conn.GetProperty(ws.ConnKeyGame) != nil {
		t.Fatalf("watchers=%d prop=%v", hub.Watchers(7), conn.GetProperty(ws.ConnKeyGame))
	}
}
