package transport

import (
	"context"
	"time"

	"go.uber.org/zap"

	"PowerLine/modules/kit/logx"
	"PowerLine/modules/kit/tracex"
)

// AccessLog 记录一次请求的结果，HTTP 与 WS 共用，请求结束时输出一行。
type AccessLog struct {
	action  string
	begin   time.Time
	code    BizCode
	codeSet bool
	reason  string
	player  string
}

type accessLogKey struct{}

func NewContext(action, span string) context.Context {
	return NewContextWithParent(context.Background(), action, span)
}

// NewContextWithParent 沿用父 context 的取消信号，已有 trace id 时不覆盖。
func NewContextWithParent(parent context.Context, action, span string) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	if action == "" {
		action = "unknown"
	}
	ctx := tracex.EnsureTraceID(parent)
	if span != "" {
		ctx = tracex.WithSpanID(ctx, span)
	}
	return context.WithValue(ctx, accessLogKey{}, &AccessLog{
		action: action,
		begin:  time.Now(),
		code:   BizCode(SystemError),
	})
}

func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

// BizCodeOf 返回已记录的业务码，handler 没有设置过时 ok 为 false。
func BizCodeOf(ctx context.Context) (BizCode, bool) {
	al := FromContext(ctx)
	if al == nil {
		return 0, false
	}
	return al.code, al.codeSet
}

func SetBizCode(ctx context.Context, code BizCode) {
	if al := FromContext(ctx); al != nil {
		al.code = code
		al.codeSet = true
	}
}

func SetErrorReason(ctx context.Context, reason string) {
	if al := FromContext(ctx); al != nil && reason != "" {
		al.reason = reason
	}
}

func SetPlayer(ctx context.Context, player string) {
	if al := FromContext(ctx); al != nil {
		al.player = player
	}
}

func WriteAccessLog(ctx context.Context, log logx.Logger) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}
	fields := make([]zap.Field, 0, 4)
	fields = append(fields, zap.Duration("latency", time.Since(al.begin)))
	if al.player != "" {
		fields = append(fields, zap.String("player", al.player))
	}
	if al.code == BizCode(OK) {
		fields = append(fields, zap.String("result", "success"))
	} else {
		fields = append(fields, zap.String("result", "failure"))
		if al.reason != "" {
			fields = append(fields, zap.String("error_reason", al.reason))
		}
	}
	logx.ReportAccessWithLoggerContext(ctx, log, al.action, int(al.code), fields...)
}
