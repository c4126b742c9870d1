package model

import (
	"time"

	"PowerLine/internal/game/entity"
)

// GameResult 战绩表，一局一位玩家一行。
type GameResult struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	GameID     int64     `gorm:"column:game_id;not null;uniqueIndex:uk_game_player,priority:1;comment:对局id" json:"game_id"`
	PlayerID   string    `gorm:"column:player_id;type:varchar(64);not null;uniqueIndex:uk_game_player,priority:2" json:"player_id"`
	PlayerName string    `gorm:"column:player_name;type:varchar(100);comment:玩家昵称" json:"player_name"`
	Place      int       `gorm:"column:place;not null;comment:名次，从1开始" json:"place"`
	Powered    int       `gorm:"column:powered;not null;comment:可供电城市数" json:"powered"`
	Balance    int       `gorm:"column:balance;not null;comment:余额" json:"balance"`
	Connected  int       `gorm:"column:connected;not null;comment:接入城市数" json:"connected"`
	Winner     bool      `gorm:"column:winner;not null;default:false" json:"winner"`
	MapName    string    `gorm:"column:map_name;type:varchar(64)" json:"map_name"`
	Rounds     int       `gorm:"column:rounds;not null" json:"rounds"`
	FinishedAt time.Time `gorm:"column:finished_at;type:timestamp;index" json:"finished_at"`
}

func (GameResult) TableName() string {
	return "game_result"
}

func ResultToRows(r entity.Result) []GameResult {
	rows := make([]GameResult, 0, len(r.Standings))
	for i, st := range r.Standings {
		rows = append(rows, GameResult{
			GameID:     int64(r.GameID),
			PlayerID:   string(st.Player),
			PlayerName: r.Names[st.Player],
			Place:      i + 1,
			Powered:    st.Powered,
			Balance:    st.Balance,
			Connected:  st.Connected,
			Winner:     st.Player == r.Winner,
			MapName:    r.MapName,
			Rounds:     r.Rounds,
			FinishedAt: r.FinishedAt,
		})
	}
	return rows
}
