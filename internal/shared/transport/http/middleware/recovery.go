package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"PowerLine/internal/shared/transport"
	"PowerLine/modules/kit/logx"
)

// Recovery 接住 handler panic，按统一响应体回系统错误。
// 需要挂在 AccessLog 之后，访问日志才能拿到业务码。
func Recovery(log logx.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, p any) {
		ctx := c.Request.Context()
		log.WithContext(ctx).Error("http handler panic",
			zap.String("path", c.Request.URL.Path),
			zap.String("panic", fmt.Sprintf("%v", p)),
			zap.Stack("stack"),
		)
		transport.SetBizCode(ctx, transport.SystemError)
		c.AbortWithStatusJSON(http.StatusOK, gin.H{"code": transport.SystemError, "msg": "系统繁忙，请稍后重试"})
	})
}
