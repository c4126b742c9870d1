package interfaces

import (
	"github.com/gin-gonic/gin"

	"PowerLine/internal/game/interfaces/handler"
	"PowerLine/internal/game/service"
	"PowerLine/internal/game/service/port"
	"PowerLine/internal/shared/session"
	transporthttp "PowerLine/internal/shared/transport/http"
	"PowerLine/internal/shared/transport/ws"
	"PowerLine/modules/kit/logx"
)

type Module struct {
	wsHandler   *handler.WsHandler
	httpHandler *handler.HttpHandler
}

func New(svc *service.GameService, rt handler.GameRuntime, maps handler.MapCatalog, verify handler.SeatVerifier,
	hub *session.Hub, wsServer *ws.Server, log logx.Logger) *Module {
	game := handler.NewGame(svc, rt, maps, verify, hub, wsServer, log)
	return &Module{
		wsHandler:   handler.NewWsHandler(game),
		httpHandler: handler.NewHttpHandler(game),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

// NewPublisher 返回推送对局投影的 Notifier，交给 actor runtime。
func NewPublisher(hub *session.Hub) port.Notifier {
	return handler.NewViewPublisher(hub)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
