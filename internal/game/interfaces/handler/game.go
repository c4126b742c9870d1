package handler

import (
	"context"
	"strconv"
	"strings"

	"PowerLine/internal/game/engine"
	"PowerLine/internal/game/entity"
	"PowerLine/internal/game/service"
	"PowerLine/internal/shared/security"
	"PowerLine/internal/shared/session"
	"PowerLine/internal/shared/transport"
	"PowerLine/internal/shared/transport/ws"
	"PowerLine/modules/kit/errx"
	"PowerLine/modules/kit/logx"
	"PowerLine/modules/kit/tracex"
)

// GameRuntime 把命令投递给对局 actor。
type GameRuntime interface {
	Apply(ctx context.Context, id entity.GameID, env engine.Envelope) (engine.View, error)
	View(ctx context.Context, id entity.GameID) (engine.View, error)
}

// MapCatalog 列出可用地图。
type MapCatalog interface {
	Names() ([]string, error)
}

// SeatVerifier 校验座位令牌。
type SeatVerifier func(token string) (*security.SeatClaims, error)

type Game struct {
	service  *service.GameService
	runtime  GameRuntime
	maps     MapCatalog
	verify   SeatVerifier
	hub      *session.Hub
	wsServer *ws.Server
	log      logx.Logger
}

func NewGame(svc *service.GameService, rt GameRuntime, maps MapCatalog, verify SeatVerifier,
	hub *session.Hub, wsServer *ws.Server, log logx.Logger) *Game {
	if log == nil {
		log = logx.Nop()
	}
	if verify == nil {
		verify = security.ParseSeat
	}
	return &Game{
		service:  svc,
		runtime:  rt,
		maps:     maps,
		verify:   verify,
		hub:      hub,
		wsServer: wsServer,
		log:      log,
	}
}

func parseGameID(raw string) (entity.GameID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, errx.ErrReqParamERR.WithMsgf("invalid game id %q", raw)
	}
	return entity.GameID(id), nil
}

// seat 校验令牌属于这一局，返回座位上的玩家。
func (g *Game) seat(ctx context.Context, id entity.GameID, token string) (engine.PlayerID, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return "", errx.ErrUnauthorized.WithMsg("missing seat token")
	}
	claims, err := g.verify(token)
	if err != nil {
		return "", errx.ErrUnauthorized.WithMsg("invalid seat token").WithCause(err)
	}
	if claims.GameID != int64(id) {
		return "", errx.ErrUnauthorized.WithMsg("seat token belongs to another game")
	}
	transport.SetPlayer(ctx, claims.PlayerID)
	return engine.PlayerID(claims.PlayerID), nil
}

// command 是 HTTP 与 WS 共用的执行路径。
func (g *Game) command(ctx context.Context, id entity.GameID, token string, env engine.Envelope) (engine.View, error) {
	ctx = tracex.WithGameID(ctx, id.String())
	player, err := g.seat(ctx, id, token)
	if err != nil {
		return engine.View{}, err
	}
	env.Player = player
	return g.runtime.Apply(tracex.WithPlayer(ctx, string(player)), id, env)
}
