package tracex

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type traceIDKey struct{}
type spanIDKey struct{}
type gameIDKey struct{}
type playerKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, traceIDKey{})
}

func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, spanIDKey{}, spanID)
}

func SpanIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, spanIDKey{})
}

// WithGameID 把当前处理的对局 id 挂到 ctx，日志会自动带上 game_id。
func WithGameID(ctx context.Context, gameID string) context.Context {
	return context.WithValue(ctx, gameIDKey{}, gameID)
}

func GameIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, gameIDKey{})
}

// WithPlayer 记录发起请求的座位（玩家 id）。
func WithPlayer(ctx context.Context, player string) context.Context {
	return context.WithValue(ctx, playerKey{}, player)
}

func PlayerFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, playerKey{})
}

// EnsureTraceID 在 ctx 没有 trace_id 时补一个。
func EnsureTraceID(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := TraceIDFrom(ctx); ok {
		return ctx
	}
	return WithTraceID(ctx, NewTraceID())
}

// NewTraceID 生成 32 位 hex 的 trace_id（随机 UUID 去掉连字符）。
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func stringFrom(ctx context.Context, key any) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(key).(string)
	return s, ok && s != ""
}
