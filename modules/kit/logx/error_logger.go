package logx

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// BizLog 是规则拒绝、参数错误这类业务日志的输入。
type BizLog struct {
	Action  string
	Reason  string
	Message string
}

// SysLog 是存储故障、超时这类系统错误日志的输入。
type SysLog struct {
	Action string
	Err    error
}

func NewBizLog(action, reason, message string) BizLog {
	return BizLog{Action: action, Reason: reason, Message: message}
}

func NewSysLog(action string, err error) SysLog {
	return SysLog{Action: action, Err: err}
}

// headline 拼出 "action, k:v, k:v"，空值跳过。
func headline(action string, kv ...string) string {
	var b strings.Builder
	b.WriteString(action)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		b.WriteString(", ")
		b.WriteString(kv[i])
		b.WriteString(":")
		b.WriteString(kv[i+1])
	}
	return b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// ReportAccessWithLoggerContext 写访问日志，级别按业务码：
// 0 为 INFO，500 以上为 ERROR，其余为 WARN。
func ReportAccessWithLoggerContext(ctx context.Context, l Logger, action string, bizCode int, fields ...zap.Field) {
	if l == nil {
		return
	}
	all := append([]zap.Field{
		zap.String("log_type", "access"),
		zap.String("action", action),
		zap.Int("biz_code", bizCode),
	}, fields...)

	log := l.WithContext(ctx)
	switch {
	case bizCode == 0:
		log.Info("access", all...)
	case bizCode >= 500:
		log.Error("access", all...)
	default:
		log.Warn("access", all...)
	}
}

// ReportBizWithLoggerContext 业务拒绝是玩家操作的正常结果，打 INFO 不带栈。
func ReportBizWithLoggerContext(ctx context.Context, l Logger, biz BizLog, fields ...zap.Field) {
	if l == nil {
		return
	}
	action := orDefault(biz.Action, "biz_reject")
	all := []zap.Field{zap.String("err_type", "biz"), zap.String("action", action)}
	if biz.Reason != "" {
		all = append(all, zap.String("reason", biz.Reason))
	}
	if biz.Message != "" {
		all = append(all, zap.String("biz_message", biz.Message))
	}
	all = append(all, fields...)
	l.WithContext(ctx).Info(headline(action, "reason", biz.Reason, "msg", biz.Message), all...)
}

// ReportSysErrorWithLoggerContext 打 ERROR，带 cause 链和发生处的栈。
func ReportSysErrorWithLoggerContext(ctx context.Context, l Logger, sys SysLog, fields ...zap.Field) {
	if sys.Err == nil || l == nil {
		return
	}
	action := orDefault(sys.Action, "sys_error")
	meta := BuildErrorLog(sys.Err)

	all := []zap.Field{zap.String("err_type", "sys"), zap.String("action", action)}
	optional := []struct {
		key string
		val string
	}{
		{"error_code", meta.Code},
		{"origin_caller", meta.Origin},
		{"stack_origin", meta.Stack},
	}
	for _, o := range optional {
		if o.val != "" {
			all = append(all, zap.String(o.key, o.val))
		}
	}
	if len(meta.CauseChain) != 0 {
		all = append(all, zap.Strings("cause_chain", meta.CauseChain))
	}
	if len(meta.Data) != 0 {
		all = append(all, zap.Any("error_data", meta.Data))
	}
	all = append(all, fields...)

	msg := headline(action, "reason", meta.Reason, "error", meta.Error)
	if meta.Reason == "" {
		msg = headline(action, "error", meta.Error, "msg", meta.Msg)
	}
	l.WithContext(ctx).Error(msg, all...)
}

type bizProvider interface {
	IsBiz() bool
}

// ReportErrorWithLoggerContext 按错误类型分流到业务日志或系统错误日志。
func ReportErrorWithLoggerContext(ctx context.Context, l Logger, action string, err error, fields ...zap.Field) {
	if err == nil || l == nil {
		return
	}
	var bp bizProvider
	if !errors.As(err, &bp) || !bp.IsBiz() {
		ReportSysErrorWithLoggerContext(ctx, l, NewSysLog(action, err), fields...)
		return
	}
	meta := BuildErrorLog(err)
	if meta.Expected != "" {
		fields = append(fields, zap.String("expected", meta.Expected))
	}
	ReportBizWithLoggerContext(ctx, l, NewBizLog(action, meta.Reason, meta.Msg), fields...)
}
