package errx

import (
	"errors"
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strings"
)

// Code 是对外稳定的错误码。
type Code string

type kind uint8

const (
	kindBiz kind = iota
	kindSys
)

// Reason 由业务包实现，给错误挂一个更细的原因码。
type Reason interface {
	ReasonCode() string
}

// Error 是值语义的错误：哨兵只读，所有 With* 都派生新对象。
// 业务错误不带栈；系统错误在第一次挂上 cause 时捕获一次栈。
type Error struct {
	kind  kind
	code  Code
	msg   string
	data  map[string]any
	cause error
	stack []uintptr
}

func NewBiz(code Code, msg string) *Error {
	return &Error{kind: kindBiz, code: code, msg: msg}
}

func NewSys(code Code, msg string) *Error {
	return &Error{kind: kindSys, code: code, msg: msg}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	parts := []string{string(e.code)}
	if e.msg != "" {
		parts = append(parts, e.msg)
	}
	if e.cause != nil {
		parts = append(parts, e.cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is 只比较错误码。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t != nil && e.code == t.code
}

func (e *Error) Code() Code {
	if e == nil {
		return ""
	}
	return e.code
}

func (e *Error) CodeText() string { return string(e.Code()) }

func (e *Error) Msg() string {
	if e == nil {
		return ""
	}
	return e.msg
}

func (e *Error) IsBiz() bool {
	return e != nil && e.kind == kindBiz
}

// Data 返回拷贝。
func (e *Error) Data() map[string]any {
	if e == nil {
		return nil
	}
	return maps.Clone(e.data)
}

// Reason 取 data.reason。
func (e *Error) Reason() string {
	if e == nil {
		return ""
	}
	s, _ := e.data["reason"].(string)
	return s
}

func (e *Error) Stack() []uintptr {
	if e == nil || len(e.stack) == 0 {
		return nil
	}
	return slices.Clone(e.stack)
}

func (e *Error) derive(edit func(*Error)) *Error {
	next := &Error{
		kind:  e.kind,
		code:  e.code,
		msg:   e.msg,
		data:  maps.Clone(e.data),
		cause: e.cause,
		stack: slices.Clone(e.stack),
	}
	edit(next)
	return next
}

// WithMsg 换掉 msg，code 不变，errors.Is 仍命中原哨兵。
func (e *Error) WithMsg(msg string) *Error {
	return e.derive(func(n *Error) { n.msg = msg })
}

func (e *Error) WithMsgf(format string, args ...any) *Error {
	return e.WithMsg(fmt.Sprintf(format, args...))
}

func (e *Error) WithData(key string, value any) *Error {
	return e.derive(func(n *Error) {
		if n.data == nil {
			n.data = make(map[string]any, 1)
		}
		n.data[key] = value
	})
}

func (e *Error) WithDataMap(data map[string]any) *Error {
	return e.derive(func(n *Error) {
		if len(data) == 0 {
			return
		}
		if n.data == nil {
			n.data = make(map[string]any, len(data))
		}
		maps.Copy(n.data, data)
	})
}

func (e *Error) WithReason(reason Reason) *Error {
	code := ""
	if reason != nil {
		code = reason.ReasonCode()
	}
	return e.WithData("reason", code)
}

func (e *Error) WithCause(cause error) *Error {
	next := e.derive(func(n *Error) { n.cause = cause })
	// 下层已经有栈就不重复捕获
	if next.kind == kindSys && cause != nil && len(next.stack) == 0 && !hasStackInChain(cause) {
		next.stack = captureStack(3)
	}
	return next
}

// From 沿错误链取出第一个 *Error。
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

func IsBiz(err error) bool {
	e, ok := From(err)
	return ok && e.IsBiz()
}

// ReasonOf 返回错误链上的 reason，没有则为空串。
func ReasonOf(err error) string {
	e, _ := From(err)
	return e.Reason()
}

func captureStack(skip int) []uintptr {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return nil
	}
	return pcs[:n]
}

func hasStackInChain(err error) bool {
	for depth := 0; err != nil && depth < 32; depth++ {
		if sp, ok := err.(interface{ Stack() []uintptr }); ok && len(sp.Stack()) > 0 {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
