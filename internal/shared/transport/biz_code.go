package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 响应体 code 字段的取值，HTTP 与 WS 共用。
const (
	OK             = 0
	InvalidParam   = 1
	SessionInvalid = 2
	NotFound       = 3
	RuleViolation  = 4
	IllegalState   = 5

	SystemError         = 500
	UpstreamUnavailable = 503
	UpstreamTimeout     = 504
)
