package tracex

import (
	"context"
	"testing"
)

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "t-1")
	if got, ok := TraceIDFrom(ctx); !ok || got != "t-1" {
		t.Fatalf("期望 TraceIDFrom round-trip 成功，got=%q ok=%v", got, ok)
	}
}

func TestEnsureTraceID_已有则保留_没有则生成(t *testing.T) {
	ctx := EnsureTraceID(WithTraceID(context.Background(), "keep"))
	if got, _ := TraceIDFrom(ctx); got != "keep" {
		t.Fatalf("期望保留已有 trace_id, got=%q", got)
	}
	ctx = EnsureTraceID(context.Background())
	got, ok := TraceIDFrom(ctx)
	if !ok || len(got) != 32 {
		t.Fatalf("期望生成 32 位 trace_id, got=%q", got)
	}
}

func TestGameID_空串视为不存在(t *testing.T) {
	ctx := WithGameID(context.Background(), "")
	if _, ok := GameIDFrom(ctx); ok {
		t.Fatalf("期望空 game_id 视为不存在")
	}
}

func TestPlayer_RoundTrip(t *testing.T) {
	ctx := WithPlayer(context.Background(), "p2")
	if got, ok := PlayerFrom(ctx); !ok || got != "p2" {
		t.Fatalf("got=%q ok=%v", got, ok)
	}
	if _, ok := PlayerFrom(context.Background()); ok {
		t.Fatalf("期望没有 player")
	}
}
