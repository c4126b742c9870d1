package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"

	"PowerLine/internal/shared/transport/http/middleware"
	"PowerLine/modules/kit/logx"
)

// WS 升级后的连接不受 WriteTimeout 影响。
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

// Server 是对外 HTTP 入口，业务路由挂在 Group 下。
type Server struct {
	engine *gin.Engine
	srv    *nethttp.Server
}

// NewHttpServer engine 为 nil 时新建一个，公共中间件总是按 跨域、访问日志、恢复 的顺序挂上。
func NewHttpServer(addr string, engine *gin.Engine, logger logx.Logger) *Server {
	if engine == nil {
		engine = gin.New()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	engine.Use(
		middleware.Cors(),
		middleware.AccessLog(logger),
		middleware.Recovery(logger),
	)
	engine.GET("/healthz", healthz)

	return &Server{
		engine: engine,
		srv: &nethttp.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
	}
}

func healthz(c *gin.Context) {
	c.JSON(nethttp.StatusOK, gin.H{"code": 0, "data": gin.H{"status": "ok"}})
}

// Start 阻塞运行，正常关闭时返回 http.ErrServerClosed。
func (s *Server) Start() error { return s.srv.ListenAndServe() }

func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

func (s *Server) Group() *gin.RouterGroup { return &s.engine.RouterGroup }

func (s *Server) Handler() nethttp.Handler { return s.engine }

// Registrar 由各业务模块实现，启动时把自己的路由挂到 Group 上。
type Registrar interface {
	HttpRegister(g *gin.RouterGroup)
}
