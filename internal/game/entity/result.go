package entity

import (
	"time"

	"PowerLine/internal/game/engine"
)

// Result 是结束对局的战绩，写入战绩表。
type Result struct {
	GameID     GameID
	MapName    string
	Rounds     int
	Winner     engine.PlayerID
	Standings  []engine.Standing
	Names      map[engine.PlayerID]string
	FinishedAt time.Time
}

// WinCount 是排行榜的一行。
type WinCount struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Wins       int    `json:"wins"`
}

// Result 只在对局结束后有意义。
func (g *Game) Result() (Result, bool) {
	winner, ok := g.state.Winner()
	if !ok {
		return Result{}, false
	}
	names := make(map[engine.PlayerID]string, len(g.record.Players))
	for _, p := range g.record.Players {
		names[p.ID] = p.Name
	}
	return Result{
		GameID:     g.record.ID,
		MapName:    g.record.MapName,
		Rounds:     g.state.Round(),
		Winner:     winner,
		Standings:  g.state.Standings(),
		Names:      names,
		FinishedAt: g.record.UpdatedAt,
	}, true
}
