package ws

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"PowerLine/internal/shared/logs"
	"PowerLine/internal/shared/transport"
	"PowerLine/modules/kit/logx"
	"PowerLine/modules/kit/tracex"
)

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

// Group 是同一前缀下的一组路由，例如 game.*。
type Group struct {
	prefix string
	router *Router
}

func (g *Group) Handle(name string, h HandlerFunc) {
	g.router.routes[g.prefix+"."+name] = h
}

// Router 按消息名 组.处理器 分发，所有路由在启动时注册完，运行期只读。
type Router struct {
	routes map[string]HandlerFunc
	log    logx.Logger
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.NewZapLogger(logs.Logger())
	}
	return &Router{
		routes: make(map[string]HandlerFunc),
		log:    l,
	}
}

func (r *Router) Group(prefix string) *Group {
	return &Group{prefix: prefix, router: r}
}

// Routes 返回已注册的消息名，按字典序。
func (r *Router) Routes() []string {
	names := make([]string, 0, len(r.routes))
	for name := range r.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch 处理一条请求并填好 resp，handler 没设置 code 时按系统错误返回。
func (r *Router) Dispatch(req *WsMsgReq, resp *WsMsgResp) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.SystemError
	resp.Body.Msg = nil

	name := ""
	if req != nil && req.Body != nil {
		name = req.Body.Name
	}
	ctx := r.requestContext(req, name)
	defer r.writeAccessLog(ctx, resp)

	if req == nil || req.Body == nil {
		fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	if !validRouteName(name) {
		fail(resp, transport.InvalidParam, "路由参数有误")
		return
	}
	h := r.routes[name]
	if h == nil {
		fail(resp, transport.InvalidParam, "路由不存在")
		return
	}
	r.invoke(ctx, h, req, resp)
}

// invoke 单个 handler panic 不影响连接。
func (r *Router) invoke(ctx context.Context, h HandlerFunc, req *WsMsgReq, resp *WsMsgResp) {
	defer func() {
		if p := recover(); p != nil {
			r.log.WithContext(ctx).Error("ws handler panic",
				zap.String("name", req.Body.Name),
				zap.String("panic", fmt.Sprintf("%v", p)),
			)
			fail(resp, transport.SystemError, "系统繁忙，请稍后重试")
		}
	}()
	h(ctx, req, resp)
}

func (r *Router) requestContext(req *WsMsgReq, name string) context.Context {
	action := "WS unknown"
	if name != "" {
		action = "WS " + name
	}
	ctx := transport.NewContext(action, "ws")
	if req != nil && req.Conn != nil {
		if gid, ok := req.Conn.GetProperty(ConnKeyGame).(string); ok {
			ctx = tracex.WithGameID(ctx, gid)
		}
	}
	return ctx
}

func validRouteName(name string) bool {
	prefix, handler, ok := strings.Cut(name, ".")
	return ok && prefix != "" && handler != "" && !strings.Contains(handler, ".")
}

func fail(resp *WsMsgResp, code int, msg string) {
	resp.Body.Code = code
	resp.Body.Msg = msg
}

func (r *Router) writeAccessLog(ctx context.Context, resp *WsMsgResp) {
	transport.SetBizCode(ctx, transport.BizCode(resp.Body.Code))
	transport.WriteAccessLog(ctx, r.log)
}

// Registrar 由各业务模块实现，启动时把自己的路由挂到 Router 上。
type Registrar interface {
	WsRegister(r *Router)
}
