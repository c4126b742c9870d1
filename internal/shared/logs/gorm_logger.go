package logs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	glogger "gorm.io/gorm/logger"

	"PowerLine/modules/kit/logx"
)

// GormLogger 把 gorm 输出转给 logx，trace/对局字段从 ctx 取。
// 找不到记录是正常结果，不当错误打。
type GormLogger struct {
	log   logx.Logger
	level glogger.LogLevel
	slow  time.Duration
}

func NewGormLogger(log logx.Logger, level glogger.LogLevel, slow time.Duration) glogger.Interface {
	if log == nil {
		log = logx.Nop()
	}
	return &GormLogger{log: log.With(zap.String("component", "gorm")), level: level, slow: slow}
}

func (g *GormLogger) LogMode(level glogger.LogLevel) glogger.Interface {
	cp := *g
	cp.level = level
	return &cp
}

func (g *GormLogger) Info(ctx context.Context, format string, args ...any) {
	if g.level >= glogger.Info {
		g.log.WithContext(ctx).Info(fmt.Sprintf(format, args...))
	}
}

func (g *GormLogger) Warn(ctx context.Context, format string, args ...any) {
	if g.level >= glogger.Warn {
		g.log.WithContext(ctx).Warn(fmt.Sprintf(format, args...))
	}
}

func (g *GormLogger) Error(ctx context.Context, format string, args ...any) {
	if g.level >= glogger.Error {
		g.log.WithContext(ctx).Error(fmt.Sprintf(format, args...))
	}
}

func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= glogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, glogger.ErrRecordNotFound)
	slow := g.slow > 0 && elapsed > g.slow
	if !failed && !slow && g.level < glogger.Info {
		return
	}

	sql, rows := fc()
	log := g.log.WithContext(ctx).With(
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	)
	switch {
	case failed:
		log.Error("sql failed", zap.Error(err))
	case slow:
		log.Warn("slow sql")
	default:
		log.Debug("sql")
	}
}
