package handler

import (
	"PowerLine/internal/game/engine"
	"PowerLine/internal/game/entity"
	"PowerLine/internal/shared/session"
)

// ViewPublisher 把命令执行后的投影广播给观看这一局的连接。
type ViewPublisher struct {
	hub *session.Hub
}

func NewViewPublisher(hub *session.Hub) *ViewPublisher {
	return &ViewPublisher{hub: hub}
}

func (p *ViewPublisher) Publish(id entity.GameID, view engine.View) {
	if p == nil || p.hub == nil {
		return
	}
	p.hub.Broadcast(int64(id), StateMsg, StatePush{GameID: id.String(), View: view})
}
