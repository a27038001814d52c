package server

import (
	"fmt"
	"strconv"

	"github.com/Trinoooo/scribble/consts"
	"github.com/Trinoooo/scribble/errs"
	"github.com/Trinoooo/scribble/logs"
	"github.com/luci/go-render/render"
	"go.uber.org/zap"
)

type MiddlewareFunc func(handleFn HandleFunc) HandleFunc

func LogMw(handleFn HandleFunc) HandleFunc {
	return func(req *consts.PadRequest) (*consts.PadResponse, error) {
		logs.Info(fmt.Sprintf("req: %s", render.Render(req)))
		resp, err := handleFn(req)
		logs.Info(fmt.Sprintf("resp: %s, errs: %v", render.Render(resp), err))
		return resp, err
	}
}

func ParamsValidateMw(handleFn HandleFunc) HandleFunc {
	return func(req *consts.PadRequest) (*consts.PadResponse, error) {
		if req.OperationType != consts.OperationTypeList {
			idLength := len(req.AccountId)
			if idLength <= 0 || idLength > consts.KB {
				e := errs.NewInvalidParamErr()
				logs.Error(e.Error(), zap.String(consts.LogFieldParams, "idLength"), zap.Int(consts.LogFieldValue, idLength))
				return newExceptionResp(e), e
			}
		}

		if req.OperationType == consts.OperationTypeCreate {
			if req.Capacity <= 0 || req.Capacity > 16*consts.MB {
				e := errs.NewInvalidParamErr()
				logs.Error(e.Error(), zap.String(consts.LogFieldParams, "capacity"), zap.Int64(consts.LogFieldValue, req.Capacity))
				return newExceptionResp(e), e
			}
		}

		if req.OperationType == consts.OperationTypeSubmit {
			// 指令头5字节 + 载荷上限1MB
			// 长度下限不在这里卡，交给调度器报 MalformedInstruction
			instLength := len(req.Instruction)
			if instLength > consts.MB+5 {
				e := errs.NewInvalidParamErr()
				logs.Error(e.Error(), zap.String(consts.LogFieldParams, "instLength"), zap.Int(consts.LogFieldValue, instLength))
				return newExceptionResp(e), e
			}
		}

		return handleFn(req)
	}
}

// MetricsMw 统计提交量与失败分布
func (srv *Server) MetricsMw(handleFn HandleFunc) HandleFunc {
	return func(req *consts.PadRequest) (*consts.PadResponse, error) {
		if req.OperationType == consts.OperationTypeSubmit {
			srv.metricsHelper.SubmitCounter.Inc()
		}
		resp, err := handleFn(req)
		if err != nil {
			srv.metricsHelper.FailureCounter.WithLabelValues(strconv.FormatInt(errs.GetCode(err), 10)).Inc()
		}
		return resp, err
	}
}
