package port

import (
	"context"

	"PowerLine/internal/game/engine"
	"PowerLine/internal/game/entity"
	"PowerLine/internal/game/network"
)

// GameRepository 保存对局存档（开局参数 + 命令日志 + 最新投影）。
type GameRepository interface {
	Load(ctx context.Context, id entity.GameID) (*entity.Record, error)
	Save(ctx context.Context, s *entity.GamePersistSnapshot) error
}

// ResultRepository 记录结束对局的战绩。
type ResultRepository interface {
	SaveResult(ctx context.Context, r entity.Result) error
	// TopWinners 按胜场数从多到少，胜场相同按玩家 id 排。
	TopWinners(ctx context.Context, limit int) ([]entity.WinCount, error)
}

// MapProvider 按名字提供完整地图。
type MapProvider interface {
	Load(name string) (*network.Graph, error)
}

// SeatIssuer 为某局的某位玩家签发座位令牌。
type SeatIssuer func(id entity.GameID, player engine.PlayerID) (string, error)

// Notifier 在命令成功后推送最新投影给旁观连接。
type Notifier interface {
	Publish(id entity.GameID, view engine.View)
}
