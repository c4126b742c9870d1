package handler

import (
	"context"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"PowerLine/internal/game/engine"
	"PowerLine/internal/game/service"
	"PowerLine/internal/shared/transport"
	"PowerLine/internal/shared/transport/ws"
)

type HttpHandler struct {
	game *Game
}

func NewHttpHandler(g *Game) *HttpHandler {
	return &HttpHandler{game: g}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/maps", h.Maps)
	group.GET("/leaderboard", h.Leaderboard)
	games := group.Group("/games")
	games.POST("", h.Create)
	games.GET("/:id", h.View)
	games.POST("/:id/commands", h.Command)
	games.GET("/:id/ws", h.Watch)
}

func (h *HttpHandler) Maps(c *gin.Context) {
	names, err := h.game.maps.Names()
	if err != nil {
		h.error(c.Request.Context(), c, "list maps", err)
		return
	}
	h.ok(c, gin.H{"maps": names})
}

// Leaderboard GET /leaderboard?limit=10
func (h *HttpHandler) Leaderboard(c *gin.Context) {
	ctx := c.Request.Context()

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(c, transport.InvalidParam, "limit 参数有误")
			return
		}
		limit = n
	}
	top, err := h.game.service.Leaderboard(ctx, limit)
	if err != nil {
		h.error(ctx, c, "leaderboard", err)
		return
	}
	h.ok(c, gin.H{"top": top})
}

func (h *HttpHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req service.CreateGameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	resp, err := h.game.service.Create(ctx, req)
	if err != nil {
		h.error(ctx, c, "create game", err)
		return
	}
	h.ok(c, resp)
}

func (h *HttpHandler) View(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseGameID(c.Param("id"))
	if err != nil {
		h.error(ctx, c, "view game", err)
		return
	}
	view, err := h.game.runtime.View(ctx, id)
	if err != nil {
		h.error(ctx, c, "view game", err)
		return
	}
	h.ok(c, view)
}

func (h *HttpHandler) Command(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseGameID(c.Param("id"))
	if err != nil {
		h.error(ctx, c, "game command", err)
		return
	}
	var req CommandReq
	if err = c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	env := engine.Envelope{Name: req.Name, Params: req.Params}
	view, err := h.game.command(ctx, id, c.GetHeader("Authorization"), env)
	if err != nil {
		h.error(ctx, c, "game "+req.Name, err)
		return
	}
	h.ok(c, view)
}

// Watch 把连接升级成 WS 并开始观看这一局，之后也可以在同一连接上下命令。
func (h *HttpHandler) Watch(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseGameID(c.Param("id"))
	if err != nil {
		h.error(ctx, c, "watch game", err)
		return
	}
	view, err := h.game.runtime.View(ctx, id)
	if err != nil {
		h.error(ctx, c, "watch game", err)
		return
	}
	conn, err := h.game.wsServer.Serve(c.Writer, c.Request, map[string]any{ws.ConnKeyGame: id.String()})
	if err != nil {
		// Upgrade 失败时已经写过响应
		return
	}
	h.game.hub.Watch(int64(id), conn)
	conn.Push(StateMsg, StatePush{GameID: id.String(), View: view})
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	transport.SetBizCode(c.Request.Context(), transport.OK)
	c.JSON(nethttp.StatusOK, success(data))
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	transport.SetBizCode(c.Request.Context(), transport.BizCode(code))
	c.JSON(nethttp.StatusOK, failure(code, msg))
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, action string, err error) {
	code, msg := HandleError(ctx, h.game.log, action, err)
	h.fail(c, code, msg)
}
