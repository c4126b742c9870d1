package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"PowerLine/internal/game/entity"
	"PowerLine/internal/game/infra/persistence/model"
)

type ResultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&model.GameResult{})
}

// SaveResult 一局的所有名次在一个事务里写入，重复写同一局时忽略。
func (r *ResultRepository) SaveResult(ctx context.Context, res entity.Result) error {
	rows := model.ResultToRows(res)
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
}

type winRow struct {
	PlayerID   string `gorm:"column:player_id"`
	PlayerName string `gorm:"column:player_name"`
	Wins       int    `gorm:"column:wins"`
}

func (r *ResultRepository) TopWinners(ctx context.Context, limit int) ([]entity.WinCount, error) {
	var rows []winRow
	err := r.db.WithContext(ctx).
		Model(&model.GameResult{}).
		Select("player_id, MAX(player_name) AS player_name, COUNT(*) AS wins").
		Where("winner = ?", true).
		Group("player_id").
		Order("wins DESC").
		Order("player_id").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.WinCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.WinCount(row))
	}
	return out, nil
}
