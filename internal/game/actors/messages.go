package actors

import (
	"PowerLine/internal/game/engine"
	"PowerLine/internal/game/entity"
)

// GameMessage 是发往某一局的请求，manager 按 GameID 转发。
type GameMessage interface {
	GameID() entity.GameID
}

type GameBaseMessage struct {
	Game    entity.GameID
	TraceID string
}

func (m GameBaseMessage) GameID() entity.GameID {
	return m.Game
}

// ApplyCommand 执行一条命令，回 *Reply。
type ApplyCommand struct {
	GameBaseMessage
	Envelope engine.Envelope
}

// GetView 读取当前投影，回 *Reply。
type GetView struct {
	GameBaseMessage
}

type Reply struct {
	View engine.View
	Err  error
}
