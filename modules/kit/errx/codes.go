package errx

// 系统类错误码，跨模块统一，便于告警和排障。
// 业务错误码（规则拒绝、非法状态）由各业务包自行定义。
const (
	// CodeInternal 表示不可预期的内部错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 表示依赖不可用（存储、actor 运行时等）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout 表示请求或依赖调用超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeNotFound 表示目标资源不存在。
	CodeNotFound Code = "NOT_FOUND"
	// CodeReqParamError 表示请求参数错误。
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
	// CodeUnauthorized 表示身份校验失败。
	CodeUnauthorized Code = "UNAUTHORIZED"
)

// 统一哨兵错误，只能通过 WithData/WithCause/WithMsg 派生新对象。
var (
	ErrInternal     = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable  = NewSys(CodeUnavailable, "服务不可用")
	ErrTimeout      = NewSys(CodeTimeout, "请求超时")
	ErrNotFound     = NewBiz(CodeNotFound, "资源不存在")
	ErrReqParamERR  = NewBiz(CodeReqParamError, "请求参数错误")
	ErrUnauthorized = NewBiz(CodeUnauthorized, "身份校验失败")
)
