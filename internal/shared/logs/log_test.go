package logs

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"PowerLine/internal/shared/serverconfig"
)

func TestParseLevel_非法值回退info(t *testing.T) {
	if got := parseLevel("DEBUG"); got != zapcore.DebugLevel {
		t.Fatalf("got=%v", got)
	}
	if got := parseLevel("loud"); got != zapcore.InfoLevel {
		t.Fatalf("got=%v", got)
	}
}

func TestSetLevel_热更新生效(t *testing.T) {
	if err := Init("test", serverconfig.LogConfig{Level: "info"}); err != nil {
		t.Fatalf("Init err=%v", err)
	}
	if Logger().Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("info 级别不应输出 debug")
	}
	SetLevel("debug")
	if !Logger().Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("期望热更新后输出 debug")
	}
	SetLevel("info")
}
