package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是各层共用的日志接口，字段用 zap.Field。
// WithContext 从 ctx 取 trace/span/对局/座位，With 绑定固定字段，两者都返回新的 Logger。
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	WithContext(ctx context.Context) Logger
}
