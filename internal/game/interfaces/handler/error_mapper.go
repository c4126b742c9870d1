package handler

import (
	"context"
	"errors"

	"PowerLine/internal/game/entity"
	"PowerLine/internal/game/rules"
	"PowerLine/internal/shared/transport"
	"PowerLine/modules/kit/errx"
	"PowerLine/modules/kit/logx"
)

const busyMsg = "系统繁忙，请稍后重试"

func mapBizErrToClientCode(err error) int {
	switch {
	case errors.Is(err, rules.ErrRuleViolation):
		return transport.RuleViolation
	case errors.Is(err, rules.ErrIllegalState):
		return transport.IllegalState
	case errors.Is(err, entity.ErrGameNotFound), errors.Is(err, errx.ErrNotFound):
		return transport.NotFound
	case errors.Is(err, errx.ErrUnauthorized):
		return transport.SessionInvalid
	default:
		return transport.InvalidParam
	}
}

func mapTechErrToClientCode(err error) int {
	switch {
	case errors.Is(err, errx.ErrTimeout):
		return transport.UpstreamTimeout
	case errors.Is(err, errx.ErrUnavailable):
		return transport.UpstreamUnavailable
	default:
		return transport.SystemError
	}
}

// HandleError 把错误转成对外的 code 和文案，并在接口层打印唯一一次错误日志。
// 业务拒绝原样返回 msg，系统错误只给通用文案。
func HandleError(ctx context.Context, log logx.Logger, action string, err error) (int, string) {
	if err == nil {
		return transport.OK, ""
	}
	reason := errx.ReasonOf(err)
	if reason == "" {
		if e, ok := errx.From(err); ok {
			reason = e.CodeText()
		}
	}
	transport.SetErrorReason(ctx, reason)
	logx.ReportErrorWithLoggerContext(ctx, log, action, err)

	if errx.IsBiz(err) {
		e, _ := errx.From(err)
		return mapBizErrToClientCode(err), e.Msg()
	}
	return mapTechErrToClientCode(err), busyMsg
}
