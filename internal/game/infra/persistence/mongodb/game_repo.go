package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"PowerLine/internal/game/entity"
	"PowerLine/internal/game/infra/persistence/model"
)

const defaultCollectionName = "game"

type GameRepository struct {
	coll *mongo.Collection
}

func NewGameRepository(db *mongo.Database) *GameRepository {
	return &GameRepository{coll: db.Collection(defaultCollectionName)}
}

// EnsureIndexes 按结束状态和更新时间查询存档时用。
func (r *GameRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "phase", Value: 1}, {Key: "updated_at", Value: -1}}},
	})
	return err
}

func (r *GameRepository) Load(ctx context.Context, id entity.GameID) (*entity.Record, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb game collection is nil")
	}
	var doc model.GameDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc)
	switch {
	case err == nil:
		return model.DocToRecord(doc), nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, entity.ErrGameNotFound.WithData("game_id", id)
	default:
		return nil, err
	}
}

// Save 整档覆盖写；存量版本更高时不覆盖（过滤条件不命中，upsert 撞主键后忽略）。
func (r *GameRepository) Save(ctx context.Context, s *entity.GamePersistSnapshot) error {
	if s == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb game collection is nil")
	}
	doc, err := model.SnapshotToDoc(s)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": doc.ID, "version": bson.M{"$lte": doc.Version}}
	_, err = r.coll.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}
