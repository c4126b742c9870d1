package logx

import (
	"context"

	"go.uber.org/zap"

	"PowerLine/modules/kit/tracex"
)

// ZapLogger 是 zap 的适配器，实现 logx.Logger。
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		return &ZapLogger{logger: zap.NewNop()}
	}
	return &ZapLogger{logger: l}
}

var ctxFields = []struct {
	key  string
	from func(context.Context) (string, bool)
}{
	{"trace_id", tracex.TraceIDFrom},
	{"span_id", tracex.SpanIDFrom},
	{"game_id", tracex.GameIDFrom},
	{"player", tracex.PlayerFrom},
}

// WithContext 把 ctx 里的链路和对局信息带到日志字段上。
func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if z == nil {
		return NewZapLogger(nil)
	}
	if ctx == nil {
		return z
	}
	fields := make([]zap.Field, 0, len(ctxFields))
	for _, f := range ctxFields {
		if v, ok := f.from(ctx); ok {
			fields = append(fields, zap.String(f.key, v))
		}
	}
	if len(fields) == 0 {
		return z
	}
	return &ZapLogger{logger: z.logger.With(fields...)}
}

func (z *ZapLogger) With(fields ...zap.Field) Logger {
	if len(fields) == 0 {
		return z
	}
	return &ZapLogger{logger: z.logger.With(fields...)}
}

func (z *ZapLogger) Info(msg string, fields ...zap.Field) {
	z.logger.Info(msg, fields...)
}

func (z *ZapLogger) Error(msg string, fields ...zap.Field) {
	z.logger.Error(msg, fields...)
}

func (z *ZapLogger) Debug(msg string, fields ...zap.Field) {
	z.logger.Debug(msg, fields...)
}

func (z *ZapLogger) Warn(msg string, fields ...zap.Field) {
	z.logger.Warn(msg, fields...)
}

// Nop 返回丢弃所有输出的 Logger。
func Nop() Logger {
	return NewZapLogger(nil)
}
