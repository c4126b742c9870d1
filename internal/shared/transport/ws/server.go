package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"PowerLine/modules/kit/logx"
)

// Server 负责升级 HTTP 连接，升级后的连接共享同一个 Router。
type Server struct {
	router   *Router
	log      logx.Logger
	upgrader websocket.Upgrader
}

func NewServer(r *Router, l logx.Logger) *Server {
	if l == nil {
		l = logx.Nop()
	}
	return &Server{
		router: r,
		log:    l,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 << 10,
			WriteBufferSize: 4 << 10,
			// 观战页面可能挂在别的域名下
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = s.Serve(w, r, nil)
}

// Serve 升级连接，props 在读第一帧之前写入连接属性。
func (s *Server) Serve(w http.ResponseWriter, r *http.Request, props map[string]any) (WSConn, error) {
	raw, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return nil, err
	}
	c := newConn(raw, s.router, s.log)
	for k, v := range props {
		c.props[k] = v
	}
	c.start()
	s.log.Debug("ws connected", zap.String("addr", c.Addr()))
	return c, nil
}
