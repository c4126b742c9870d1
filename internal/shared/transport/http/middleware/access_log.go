package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"PowerLine/internal/shared/transport"
	"PowerLine/modules/kit/logx"
	"PowerLine/modules/kit/tracex"
)

// TraceHeader 客户端可带上自己的 trace id，响应里总会回写。
const TraceHeader = "X-Trace-Id"

// AccessLog 给每个请求挂上访问日志上下文。
// 业务码由 handler 通过 transport.SetBizCode 写入，没写时按 HTTP 状态推断。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		parent := c.Request.Context()
		if traceID := c.GetHeader(TraceHeader); traceID != "" {
			parent = tracex.WithTraceID(parent, traceID)
		}
		ctx := transport.NewContextWithParent(parent, actionOf(c), "http")
		c.Request = c.Request.WithContext(ctx)
		if traceID, ok := tracex.TraceIDFrom(ctx); ok {
			c.Header(TraceHeader, traceID)
		}

		c.Next()

		if _, ok := transport.BizCodeOf(ctx); !ok {
			transport.SetBizCode(ctx, transport.BizCode(codeForStatus(c.Writer.Status())))
		}
		transport.WriteAccessLog(ctx, log)
	}
}

func actionOf(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return c.Request.Method + " " + route
}

func codeForStatus(status int) int {
	switch {
	case status == http.StatusNotFound:
		return transport.NotFound
	case status >= http.StatusInternalServerError:
		return transport.SystemError
	case status >= http.StatusBadRequest:
		return transport.InvalidParam
	default:
		return transport.OK
	}
}
