package handler

import (
	"context"
	"encoding/json"

	"PowerLine/internal/game/engine"
	"PowerLine/internal/shared/transport"
	"PowerLine/internal/shared/transport/ws"
)

const StateMsg = "game.state"

var wsCommands = []string{
	engine.CmdStartAuction,
	engine.CmdRaiseBid,
	engine.CmdPassBid,
	engine.CmdPassAuction,
	engine.CmdBuyResource,
	engine.CmdPassBuyResources,
	engine.CmdConnectLocation,
	engine.CmdPassConnect,
	engine.CmdSettleOutput,
	engine.CmdEndGame,
}

type WsHandler struct {
	game *Game
}

func NewWsHandler(g *Game) *WsHandler {
	return &WsHandler{game: g}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	group := r.Group("game")
	group.Handle("watch", h.Watch)
	group.Handle("unwatch", h.Unwatch)
	group.Handle("view", h.View)
	for _, name := range wsCommands {
		group.Handle(name, h.command(name))
	}
}

// Watch 换到另一局观看，回当前投影。
func (h *WsHandler) Watch(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var msg WatchMsg
	if err := ws.Bind(wsReq, &msg); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	id, err := parseGameID(h.gameIDOf(wsReq, msg.GameID))
	if err != nil {
		h.error(ctx, wsResp, "game.watch", err)
		return
	}
	view, err := h.game.runtime.View(ctx, id)
	if err != nil {
		h.error(ctx, wsResp, "game.watch", err)
		return
	}
	wsReq.Conn.SetProperty(ws.ConnKeyGame, id.String())
	h.game.hub.Watch(int64(id), wsReq.Conn)
	h.ok(wsResp, view)
}

// Unwatch 停止接收推送，连接保持。
func (h *WsHandler) Unwatch(_ context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	h.game.hub.Unwatch(wsReq.Conn)
	wsReq.Conn.RemoveProperty(ws.ConnKeyGame)
	h.ok(wsResp, nil)
}

func (h *WsHandler) View(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var msg WatchMsg
	if err := ws.Bind(wsReq, &msg); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	id, err := parseGameID(h.gameIDOf(wsReq, msg.GameID))
	if err != nil {
		h.error(ctx, wsResp, "game.view", err)
		return
	}
	view, err := h.game.runtime.View(ctx, id)
	if err != nil {
		h.error(ctx, wsResp, "game.view", err)
		return
	}
	h.ok(wsResp, view)
}

func (h *WsHandler) command(name string) ws.HandlerFunc {
	action := "game." + name
	return func(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
		var msg CommandMsg
		if err := ws.Bind(wsReq, &msg); err != nil {
			h.fail(wsResp, transport.InvalidParam, "参数有误")
			return
		}
		id, err := parseGameID(h.gameIDOf(wsReq, msg.GameID))
		if err != nil {
			h.error(ctx, wsResp, action, err)
			return
		}
		env := engine.Envelope{Name: name}
		if len(msg.Params) > 0 {
			if env.Params, err = json.Marshal(msg.Params); err != nil {
				h.fail(wsResp, transport.InvalidParam, "参数有误")
				return
			}
		}
		view, err := h.game.command(ctx, id, msg.Token, env)
		if err != nil {
			h.error(ctx, wsResp, action, err)
			return
		}
		h.ok(wsResp, view)
	}
}

// gameIDOf 消息里没带 gameId 时取连接上观看的那一局。
func (h *WsHandler) gameIDOf(wsReq *ws.WsMsgReq, fromMsg string) string {
	if fromMsg != "" {
		return fromMsg
	}
	if wsReq == nil || wsReq.Conn == nil {
		return ""
	}
	s, _ := wsReq.Conn.GetProperty(ws.ConnKeyGame).(string)
	return s
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	if msg != "" {
		resp.Body.Msg = msg
	}
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, action string, err error) {
	code, msg := HandleError(ctx, h.game.log, action, err)
	h.fail(resp, code, msg)
}
