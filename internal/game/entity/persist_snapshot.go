package entity

import "PowerLine/internal/game/engine"

// GamePersistSnapshot 是写库用的快照，View 随存档一起保存便于离线查看。
type GamePersistSnapshot struct {
	Version uint64
	Record  Record
	View    engine.View
}
