package logx

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// detail 是 errx.Error 对外暴露的只读方法，logx 不直接依赖 errx。
type detail interface {
	CodeText() string
	Msg() string
	Data() map[string]any
	Reason() string
}

type stackProvider interface {
	Stack() []uintptr
}

const (
	maxCauseDepth = 20
	maxStackDepth = 32
)

// ErrorLog 是接口层打印一次错误时需要的全部信息。
type ErrorLog struct {
	Error      string
	Code       string
	Msg        string
	Reason     string
	Expected   string
	Data       map[string]any
	CauseChain []string
	Origin     string
	Stack      string
}

// BuildErrorLog 沿错误链提取错误码、文案、reason、cause 链和发生处的栈。
func BuildErrorLog(err error) ErrorLog {
	if err == nil {
		return ErrorLog{}
	}
	out := ErrorLog{Error: err.Error()}

	var d detail
	if errors.As(err, &d) {
		out.Code = d.CodeText()
		out.Msg = d.Msg()
		out.Reason = d.Reason()
		out.Data = d.Data()
		// 非法状态错误在 data.expected 里带着期望的阶段
		if exp, ok := out.Data["expected"].(string); ok {
			out.Expected = exp
		}
	}
	var sp stackProvider
	if errors.As(err, &sp) {
		out.Origin, out.Stack = formatStack(sp.Stack())
	}
	out.CauseChain = causeChain(err)
	return out
}

// causeChain 不含 err 本身，相邻重复的文案只留一条。
func causeChain(err error) []string {
	var out []string
	prev := ""
	for cur, i := errors.Unwrap(err), 0; cur != nil && i < maxCauseDepth; cur, i = errors.Unwrap(cur), i+1 {
		line := fmt.Sprintf("%T: %v", cur, cur)
		if line == prev {
			continue
		}
		out = append(out, line)
		prev = line
	}
	return out
}

// formatStack 跳过 runtime 自身的帧，第一帧作为发生处。
func formatStack(pcs []uintptr) (origin string, stack string) {
	if len(pcs) == 0 {
		return "", ""
	}
	frames := runtime.CallersFrames(pcs)
	lines := make([]string, 0, 8)
	for len(lines) < maxStackDepth {
		f, more := frames.Next()
		if f.Function == "" && f.File == "" {
			break
		}
		if !strings.HasPrefix(f.Function, "runtime.") {
			lines = append(lines, f.Function+" "+f.File+":"+strconv.Itoa(f.Line))
		}
		if !more {
			break
		}
	}
	if len(lines) == 0 {
		return "", ""
	}
	return lines[0], strings.Join(lines, "\n")
}
