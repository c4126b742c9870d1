package rules

import "PowerLine/modules/kit/errx"

// Code 复用 kit 的错误码类型。
type Code = errx.Code

const (
	// CodeIllegalState 命令在当前阶段/当前玩家下不合法。
	CodeIllegalState Code = "GAME_ILLEGAL_STATE"
	// CodeRuleViolation 命令合法但违反游戏规则。
	CodeRuleViolation Code = "GAME_RULE_VIOLATION"
)

// Error 复用通用错误模型。
type Error = errx.Error

// 哨兵错误：只通过 WithMsg/WithData/WithReason 派生，errors.Is 按 code 命中。
var (
	ErrIllegalState  = errx.NewBiz(CodeIllegalState, "illegal state")
	ErrRuleViolation = errx.NewBiz(CodeRuleViolation, "rule violation")
)

// Violate 生成一条规则拒绝，msg 为 reason 的文案（可带格式化参数）。
func Violate(r Reason, args ...any) *Error {
	msg := r.Message
	if len(args) > 0 {
		return ErrRuleViolation.WithMsgf(msg, args...).WithReason(r)
	}
	return ErrRuleViolation.WithMsg(msg).WithReason(r)
}

// IllegalState 生成一条状态违例，expected 描述调用方应当处于的状态。
func IllegalState(expected string) *Error {
	return ErrIllegalState.WithMsg("expected " + expected).WithData("expected", expected)
}

// ExpectedOf 取出状态违例里期望的状态描述。
func ExpectedOf(err error) string {
	e, ok := errx.From(err)
	if !ok {
		return ""
	}
	s, _ := e.Data()["expected"].(string)
	return s
}
