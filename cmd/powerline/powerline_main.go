package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	gameactor "PowerLine/internal/game/actor"
	"PowerLine/internal/game/actors"
	"PowerLine/internal/game/engine"
	"PowerLine/internal/game/entity"
	"PowerLine/internal/game/infra/mapfile"
	"PowerLine/internal/game/infra/persistence/memory"
	gamemongo "PowerLine/internal/game/infra/persistence/mongodb"
	gamemysql "PowerLine/internal/game/infra/persistence/mysql"
	"PowerLine/internal/game/interfaces"
	"PowerLine/internal/game/service"
	"PowerLine/internal/game/service/port"
	shareddb "PowerLine/internal/shared/infrastructure/db"
	sharedmongo "PowerLine/internal/shared/infrastructure/mongo"
	"PowerLine/internal/shared/logs"
	"PowerLine/internal/shared/security"
	"PowerLine/internal/shared/serverconfig"
	"PowerLine/internal/shared/session"
	transporthttp "PowerLine/internal/shared/transport/http"
	"PowerLine/internal/shared/transport/ws"
	"PowerLine/internal/shared/utils"
	"PowerLine/modules/kit/logx"
)

func main() {
	cfgPath := pflag.StringP("config", "c", "", "配置文件路径，为空时向上查找 configs/conf.yml")
	pflag.Parse()

	used := serverconfig.Load(*cfgPath, func() {
		// 只有日志级别支持热更新，其余配置需要重启
		logs.SetLevel(serverconfig.Snapshot().Log.Level)
	})
	conf := serverconfig.Snapshot()
	if err := logs.Init("powerline", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.String("path", used), zap.Any("conf", conf))

	if conf.Game.NodeID > 0 {
		if err := utils.ConfigureNode(conf.Game.NodeID); err != nil {
			logs.Fatal("configure id node failed", zap.Error(err))
		}
	}

	baseLogger := logx.NewZapLogger(logs.Logger())
	maps := mapfile.NewProvider(conf.Game.MapDir)
	if _, err := maps.Load(conf.Game.DefaultMap); err != nil {
		logs.Fatal("load default map failed", zap.String("map", conf.Game.DefaultMap), zap.Error(err))
	}

	repo, closeRepo := openGameRepository(conf)
	defer closeRepo()
	results, closeResults := openResultRepository(conf)
	defer closeResults()

	ttl := time.Duration(conf.Game.TokenTTLHours) * time.Hour
	seats := func(id entity.GameID, player engine.PlayerID) (string, error) {
		return security.AwardSeat(int64(id), string(player), ttl)
	}
	svc := service.NewGameService(repo, results, maps, seats, baseLogger, conf.Game.DefaultMap)

	hub := session.NewHub()
	publisher := interfaces.NewPublisher(hub)
	runtime := gameactor.NewRuntime(actors.Deps{
		Service:     svc,
		Repo:        repo,
		Notifier:    publisher,
		FlushEvery:  time.Duration(conf.Game.FlushIntervalMs) * time.Millisecond,
		IdleTimeout: time.Duration(conf.Game.IdleTimeoutS) * time.Second,
		Log:         baseLogger,
	}, time.Duration(conf.Game.AskTimeoutMs)*time.Millisecond)

	host := conf.HTTPServer.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, conf.HTTPServer.Port)

	wsRouter := ws.NewRouter(baseLogger)
	wsServer := ws.NewServer(wsRouter, baseLogger)
	gameModule := interfaces.New(svc, runtime, maps, security.ParseSeat, hub, wsServer, baseLogger)
	wsModules := []ws.Registrar{
		gameModule,
	}
	for _, m := range wsModules {
		m.WsRegister(wsRouter)
	}

	httpServer := transporthttp.NewHttpServer(addr, nil, baseLogger)
	httpModules := []transporthttp.Registrar{
		gameModule,
	}
	for _, m := range httpModules {
		m.HttpRegister(httpServer.Group())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("powerline server started", zap.String("addr", addr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("powerline server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	// 先停 HTTP 再停 actor，保证最后一批命令也能落盘
	runtime.Shutdown()
}

func openGameRepository(conf serverconfig.Config) (port.GameRepository, func()) {
	switch conf.Persistence.Driver {
	case "", "memory":
		logs.Warn("game archive is in memory, games are lost on restart")
		return memory.NewGameRepository(), func() {}
	case "mongodb":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := sharedmongo.Open(ctx, conf.MongoDB, logs.Logger())
		if err != nil {
			logs.Fatal("open mongodb failed", zap.Error(err))
		}
		repo := gamemongo.NewGameRepository(store.Database())
		if err = repo.EnsureIndexes(ctx); err != nil {
			logs.Fatal("ensure mongodb indexes failed", zap.Error(err))
		}
		return repo, func() { _ = store.Close(context.Background()) }
	default:
		logs.Fatal("unknown persistence driver", zap.String("driver", conf.Persistence.Driver))
		return nil, nil
	}
}

// openResultRepository 未开启战绩记录时返回 nil。
func openResultRepository(conf serverconfig.Config) (port.ResultRepository, func()) {
	if !conf.Persistence.RecordResult {
		return nil, func() {}
	}
	db, err := shareddb.Open(conf.MySQL)
	if err != nil {
		logs.Fatal("open mysql failed", zap.Error(err))
	}
	repo := gamemysql.NewResultRepository(db.DB)
	if err = repo.AutoMigrate(); err != nil {
		logs.Fatal("migrate game_result failed", zap.Error(err))
	}
	return repo, func() { _ = db.Close() }
}
