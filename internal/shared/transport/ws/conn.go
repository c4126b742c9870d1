package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"PowerLine/modules/kit/logx"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 << 10
	outBuffer      = 256
)

// conn 每条连接一读一写两个 goroutine，所有下行帧都走 out。
type conn struct {
	ws     *websocket.Conn
	router *Router
	log    logx.Logger

	out       chan *RespBody
	done      chan struct{}
	closeOnce sync.Once

	mu    sync.RWMutex
	props map[string]any
}

func newConn(c *websocket.Conn, r *Router, l logx.Logger) *conn {
	return &conn{
		ws:     c,
		router: r,
		log:    l,
		out:    make(chan *RespBody, outBuffer),
		done:   make(chan struct{}),
		props:  make(map[string]any),
	}
}

func (c *conn) SetProperty(key string, value any) {
	c.mu.Lock()
	c.props[key] = value
	c.mu.Unlock()
}

func (c *conn) GetProperty(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.props[key]
}

func (c *conn) RemoveProperty(key string) {
	c.mu.Lock()
	delete(c.props, key)
	c.mu.Unlock()
}

func (c *conn) Addr() string          { return c.ws.RemoteAddr().String() }
func (c *conn) Done() <-chan struct{} { return c.done }

func (c *conn) Push(name string, data any) {
	c.enqueue(&RespBody{Name: name, Msg: data})
}

func (c *conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// enqueue 不阻塞调用方，写缓冲满说明对端读得太慢，直接断开。
func (c *conn) enqueue(body *RespBody) {
	select {
	case <-c.done:
		return
	case c.out <- body:
	default:
		c.log.Warn("ws out buffer full, closing", zap.String("addr", c.Addr()))
		c.Close()
	}
}

func (c *conn) start() {
	go c.readPump()
	go c.writePump()
}

func (c *conn) readPump() {
	defer func() {
		if p := recover(); p != nil {
			c.log.Error("ws read loop panic", zap.String("panic", fmt.Sprintf("%v", p)))
		}
		c.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("ws read", zap.String("addr", c.Addr()), zap.Error(err))
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		if resp := c.handle(data); resp != nil {
			c.enqueue(resp)
		}
	}
}

// handle 处理一帧上行数据，无法解析的帧直接丢弃。
func (c *conn) handle(data []byte) *RespBody {
	var req ReqBody
	if err := json.Unmarshal(data, &req); err != nil {
		c.log.Warn("ws bad frame", zap.String("addr", c.Addr()), zap.Error(err))
		return nil
	}
	if req.Name == HeartbeatMsg {
		return answerHeartbeat(&req)
	}
	resp := &WsMsgResp{Body: &RespBody{Seq: req.Seq, Name: req.Name}}
	c.router.Dispatch(&WsMsgReq{Body: &req, Conn: c}, resp)
	return resp.Body
}

func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	for {
		select {
		case <-c.done:
			return
		case body := <-c.out:
			if err := c.write(body); err != nil {
				c.log.Warn("ws write", zap.String("addr", c.Addr()), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *conn) write(body *RespBody) error {
	data, err := json.Marshal(body)
	if err != nil {
		// 单条编码失败不影响连接
		c.log.Error("ws marshal", zap.String("name", body.Name), zap.Error(err))
		return nil
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}
