package model

import (
	"encoding/json"
	"time"

	"PowerLine/internal/game/engine"
	"PowerLine/internal/game/entity"
)

// GameDoc 是 mongodb 里的对局存档。命令参数以 JSON 字符串保存，便于直接查看。
type GameDoc struct {
	ID        int64        `bson:"_id"`
	Version   uint64       `bson:"version"`
	Map       string       `bson:"map"`
	Regions   []string     `bson:"regions"`
	Players   []PlayerDoc  `bson:"players"`
	Seed      int64        `bson:"seed"`
	Log       []CommandDoc `bson:"log"`
	Phase     string       `bson:"phase"`
	Round     int          `bson:"round"`
	Winner    string       `bson:"winner,omitempty"`
	View      string       `bson:"view"`
	CreatedAt time.Time    `bson:"created_at"`
	UpdatedAt time.Time    `bson:"updated_at"`
}

type PlayerDoc struct {
	ID   string `bson:"id"`
	Name string `bson:"name"`
}

type CommandDoc struct {
	Name   string `bson:"name"`
	Player string `bson:"player"`
	Params string `bson:"params,omitempty"`
}

func SnapshotToDoc(s *entity.GamePersistSnapshot) (GameDoc, error) {
	view, err := json.Marshal(s.View)
	if err != nil {
		return GameDoc{}, err
	}
	rec := s.Record
	// bson 没有 uint64，种子按位存成 int64
	doc := GameDoc{
		ID:        int64(rec.ID),
		Version:   s.Version,
		Map:       rec.MapName,
		Regions:   rec.Regions,
		Seed:      int64(rec.Seed),
		Phase:     string(s.View.Phase),
		Round:     s.View.Round,
		Winner:    string(s.View.Winner),
		View:      string(view),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	for _, p := range rec.Players {
		doc.Players = append(doc.Players, PlayerDoc{ID: string(p.ID), Name: p.Name})
	}
	for _, e := range rec.Log {
		doc.Log = append(doc.Log, CommandDoc{Name: e.Name, Player: string(e.Player), Params: string(e.Params)})
	}
	return doc, nil
}

func DocToRecord(doc GameDoc) *entity.Record {
	rec := &entity.Record{
		ID:        entity.GameID(doc.ID),
		MapName:   doc.Map,
		Regions:   doc.Regions,
		Seed:      uint64(doc.Seed),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	for _, p := range doc.Players {
		rec.Players = append(rec.Players, engine.Player{ID: engine.PlayerID(p.ID), Name: p.Name})
	}
	for _, c := range doc.Log {
		env := engine.Envelope{Name: c.Name, Player: engine.PlayerID(c.Player)}
		if c.Params != "" {
			env.Params = json.RawMessage(c.Params)
		}
		rec.Log = append(rec.Log, env)
	}
	return rec
}
