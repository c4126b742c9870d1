package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"PowerLine/internal/game/engine"
	"PowerLine/internal/game/entity"
	"PowerLine/internal/game/service/port"
	"PowerLine/internal/shared/utils"
	"PowerLine/modules/kit/errx"
	"PowerLine/modules/kit/logx"
	"PowerLine/modules/kit/tracex"
)

type CreateGameReq struct {
	Map     string          `json:"map"`
	Regions []string        `json:"regions"`
	Players []engine.Player `json:"players"`
	Seed    *uint64         `json:"seed,omitempty"`
}

type Seat struct {
	Player engine.PlayerID `json:"player"`
	Token  string          `json:"token"`
}

type CreateGameResp struct {
	GameID entity.GameID `json:"gameId,string"`
	Seats  []Seat        `json:"seats"`
	View   engine.View   `json:"view"`
}

type GameService struct {
	repo       port.GameRepository
	results    port.ResultRepository
	maps       port.MapProvider
	seats      port.SeatIssuer
	log        logx.Logger
	defaultMap string

	nextID  func() (int64, error)
	newSeed func() uint64
	now     func() time.Time
}

// NewGameService results 可以为 nil，表示不记录战绩。
func NewGameService(repo port.GameRepository, results port.ResultRepository, maps port.MapProvider,
	seats port.SeatIssuer, log logx.Logger, defaultMap string) *GameService {
	if log == nil {
		log = logx.Nop()
	}
	return &GameService{
		repo:       repo,
		results:    results,
		maps:       maps,
		seats:      seats,
		log:        log,
		defaultMap: defaultMap,
		nextID:     utils.NextSnowflakeID,
		newSeed:    rand.Uint64,
		now:        time.Now,
	}
}

// Create 开一局新游戏：选地图和区域、定种子、签发座位令牌，并立即存档。
func (s *GameService) Create(ctx context.Context, req CreateGameReq) (*CreateGameResp, error) {
	mapName := req.Map
	if mapName == "" {
		mapName = s.defaultMap
	}
	full, err := s.maps.Load(mapName)
	if err != nil {
		return nil, err
	}
	table, err := engine.TableFor(len(req.Players))
	if err != nil {
		return nil, err
	}
	regions := req.Regions
	if len(regions) == 0 {
		if regions, err = full.PickRegions(table.PlayRegions); err != nil {
			return nil, err
		}
	}
	graph, err := full.RestrictToRegions(regions...)
	if err != nil {
		return nil, err
	}

	seed := s.newSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	state, err := engine.New(engine.Settings{Players: req.Players, Graph: graph, Seed: seed})
	if err != nil {
		return nil, err
	}

	rawID, err := s.nextID()
	if err != nil {
		return nil, errx.ErrInternal.WithMsg("game id").WithCause(err)
	}
	id := entity.GameID(rawID)
	ctx = tracex.WithGameID(ctx, id.String())

	seats := make([]Seat, 0, len(req.Players))
	for _, p := range req.Players {
		token, err := s.seats(id, p.ID)
		if err != nil {
			return nil, errx.ErrInternal.WithMsg("seat token").WithData("player", p.ID).WithCause(err)
		}
		seats = append(seats, Seat{Player: p.ID, Token: token})
	}

	now := s.now()
	game := entity.NewGame(entity.Record{
		ID:        id,
		MapName:   mapName,
		Regions:   regions,
		Players:   req.Players,
		Seed:      seed,
		CreatedAt: now,
		UpdatedAt: now,
	}, state)
	game.MarkDirty()
	snap, _ := game.BuildPersistSnapshot(0)
	if err = s.repo.Save(ctx, snap); err != nil {
		return nil, errx.ErrUnavailable.WithCause(err)
	}

	s.log.WithContext(ctx).Info("game created",
		zap.String("map", mapName),
		zap.Strings("regions", regions),
		zap.Int("players", len(req.Players)),
	)
	return &CreateGameResp{GameID: id, Seats: seats, View: snap.View}, nil
}

// Restore 读取存档并按命令日志重放出当前状态。
func (s *GameService) Restore(ctx context.Context, id entity.GameID) (*entity.Game, error) {
	rec, err := s.repo.Load(ctx, id)
	switch {
	case errors.Is(err, entity.ErrGameNotFound):
		return nil, err
	case err != nil:
		return nil, errx.ErrUnavailable.WithCause(err)
	}

	full, err := s.maps.Load(rec.MapName)
	if err != nil {
		return nil, errx.ErrInternal.WithMsgf("map %q of game %d", rec.MapName, id).WithCause(err)
	}
	graph, err := full.RestrictToRegions(rec.Regions...)
	if err != nil {
		return nil, errx.ErrInternal.WithMsgf("regions of game %d", id).WithCause(err)
	}
	state, err := engine.ReplayEnvelopes(engine.Settings{Players: rec.Players, Graph: graph, Seed: rec.Seed}, rec.Log)
	if err != nil {
		// 日志与开局参数对不上，存档损坏
		return nil, errx.ErrInternal.WithMsgf("replay game %d", id).WithCause(err)
	}
	return entity.NewGame(*rec, state), nil
}

// Apply 解码并执行一条命令。对局因此结束时顺带写战绩，写失败只记日志。
func (s *GameService) Apply(ctx context.Context, g *entity.Game, env engine.Envelope) (engine.View, error) {
	cmd, err := engine.DecodeCommand(env)
	if err != nil {
		return engine.View{}, err
	}
	if err = g.Apply(cmd, s.now()); err != nil {
		return engine.View{}, err
	}
	if res, ended := g.Result(); ended && s.results != nil {
		if err := s.results.SaveResult(ctx, res); err != nil {
			logx.ReportSysErrorWithLoggerContext(ctx, s.log, logx.NewSysLog("save game result",
				errx.ErrUnavailable.WithData("game_id", g.ID()).WithCause(err)))
		}
	}
	return g.View(), nil
}

const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
)

// Leaderboard 胜场排行，未开启战绩记录时为空。
func (s *GameService) Leaderboard(ctx context.Context, limit int) ([]entity.WinCount, error) {
	if s.results == nil {
		return []entity.WinCount{}, nil
	}
	switch {
	case limit <= 0:
		limit = defaultLeaderboardSize
	case limit > maxLeaderboardSize:
		limit = maxLeaderboardSize
	}
	top, err := s.results.TopWinners(ctx, limit)
	if err != nil {
		return nil, errx.ErrUnavailable.WithCause(err)
	}
	return top, nil
}
