package handler

import (
	"encoding/json"

	"PowerLine/internal/game/engine"
)

// Response 是 HTTP 响应体，code 为 0 表示成功。
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func success(data any) Response {
	return Response{Code: 0, Data: data}
}

func failure(code int, msg string) Response {
	return Response{Code: code, Msg: msg}
}

// CommandReq 是 POST /games/:id/commands 的请求体，执行者取自座位令牌。
type CommandReq struct {
	Name   string          `json:"name" binding:"required"`
	Params json.RawMessage `json:"params"`
}

// WatchMsg 是 game.watch 的消息体。
type WatchMsg struct {
	GameID string `json:"gameId"`
}

// CommandMsg 是 game.<命令> 的消息体。
type CommandMsg struct {
	GameID string         `json:"gameId"`
	Token  string         `json:"token"`
	Params map[string]any `json:"params"`
}

// StatePush 是推给观看连接的 game.state 消息。
type StatePush struct {
	GameID string      `json:"gameId"`
	View   engine.View `json:"view"`
}
