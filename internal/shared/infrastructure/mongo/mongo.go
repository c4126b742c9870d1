package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"PowerLine/internal/shared/serverconfig"
)

const (
	appName               = "powerline"
	defaultConnectTimeout = 3 * time.Second
)

// Store 持有对局存档库的连接。
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func (s *Store) Database() *mongo.Database { return s.db }

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Open 连接并 ping 一次，ping 不通时断开并返回错误。
func Open(ctx context.Context, cfg serverconfig.MongoDBConfig, l *zap.Logger) (*Store, error) {
	if l == nil {
		l = zap.NewNop()
	}
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, *opts.ConnectTimeout)
	defer cancel()
	if err = client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	l.Info("mongodb connected", zap.String("database", cfg.Database))
	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

func clientOptions(cfg serverconfig.MongoDBConfig) (*options.ClientOptions, error) {
	switch {
	case cfg.URI == "":
		return nil, errors.New("mongodb uri is empty")
	case cfg.Database == "":
		return nil, errors.New("mongodb database is empty")
	}
	timeout := time.Duration(cfg.ConnectTimeoutS) * time.Second
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetConnectTimeout(timeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	return opts, nil
}
