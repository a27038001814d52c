package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Trinoooo/scribble/account"
	"github.com/Trinoooo/scribble/consts"
	"github.com/Trinoooo/scribble/errs"
	"github.com/Trinoooo/scribble/logs"
	"github.com/spf13/viper"
)

type Server struct {
	operationHandlers map[consts.OperationType]HandleFunc
	mws               []MiddlewareFunc
	store             account.Store
	config            *viper.Viper
	metricsHelper     *MetricsHelper
}

func NewServer() (*Server, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewServerWithConfig(config)
}

// NewServerWithConfig 使用外部装配好的配置构建服务
func NewServerWithConfig(config *viper.Viper) (*Server, error) {
	srv := &Server{
		operationHandlers: map[consts.OperationType]HandleFunc{},
		mws:               make([]MiddlewareFunc, 0),
		config:            config,
	}

	err := srv.withStore()
	if err != nil {
		return nil, err
	}

	srv.withMetrics()
	srv.withMiddleware(
		ParamsValidateMw,
		LogMw,
	)
	if srv.metricsHelper != nil {
		srv.withMiddleware(srv.MetricsMw)
	}
	srv.withHandler(consts.OperationTypeCreate, srv.HandleCreate)
	srv.withHandler(consts.OperationTypeSubmit, srv.HandleSubmit)
	srv.withHandler(consts.OperationTypeRead, srv.HandleRead)
	srv.withHandler(consts.OperationTypeList, srv.HandleList)
	return srv, nil
}

func (srv *Server) Server(resp http.ResponseWriter, req *http.Request) {
	padReq, err := parsePadReq(req)
	if err != nil {
		logs.Error(fmt.Sprintf("parse padReq errs: %#v", err))
		_, _ = resp.Write(mustMarshalPadResp(newExceptionResp(err)))
		return
	}

	handler, ok := srv.operationHandlers[padReq.OperationType]
	if !ok {
		logs.Warn(fmt.Sprintf("unsupported operation type: %#v", padReq.OperationType))
		_, _ = resp.Write(mustMarshalPadResp(newExceptionResp(errs.NewUnsupportedOperationErr())))
		return
	}

	wrappedHandler := handler
	for _, mw := range srv.mws {
		wrappedHandler = mw(wrappedHandler)
	}

	padResp, err := wrappedHandler(padReq)
	if err != nil {
		logs.Error(fmt.Sprintf("execute handle failed: %#v", err))
		_, _ = resp.Write(mustMarshalPadResp(newExceptionResp(err)))
		return
	}

	_, _ = resp.Write(mustMarshalPadResp(padResp))
}

// Close 释放账户存储，调用后服务不再可用
func (srv *Server) Close() error {
	return srv.store.Close()
}

func (srv *Server) withHandler(op consts.OperationType, handler HandleFunc) {
	srv.operationHandlers[op] = handler
}

func (srv *Server) withMiddleware(mw ...MiddlewareFunc) {
	srv.mws = append(srv.mws, mw...)
}

func (srv *Server) withStore() error {
	storeBuilder, exist := account.BuilderMap[srv.config.GetString(consts.Store)]
	if !exist {
		e := errs.NewStoreNotFoundErr()
		logs.Error(e.Error())
		return e
	}
	s, err := storeBuilder(srv.config)
	if err != nil {
		return err
	}
	srv.store = s
	return nil
}

// LoadConfig 读取默认路径下的yaml配置，文件缺失时走默认值
func LoadConfig() (*viper.Viper, error) {
	config := viper.New()
	config.SetDefault(consts.Store, consts.StoreMemory)
	config.AddConfigPath(consts.DefaultConfigPath)
	config.SetConfigName("config")
	config.SetConfigType("yaml")
	err := config.ReadInConfig()
	if err != nil {
		// 没有配置文件时全部走默认值
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return config, nil
}

func (srv *Server) withMetrics() {
	pushAddr := srv.config.GetString(consts.PushAddr)
	if pushAddr == "" {
		return
	}
	srv.metricsHelper = NewMetricsHelper(pushAddr)
}

func parsePadReq(req *http.Request) (*consts.PadRequest, error) {
	padReq := &consts.PadRequest{}

	bodyBytes, err := io.ReadAll(req.Body)
	if err != nil {
		e := errs.NewReadSocketErr().WithErr(err)
		logs.Error(e.Error())
		return nil, e
	}

	if err = json.Unmarshal(bodyBytes, padReq); err != nil {
		e := errs.NewJsonUnmarshalErr().WithErr(err)
		logs.Error(e.Error())
		return nil, e
	}

	return padReq, nil
}

func mustMarshalPadResp(resp *consts.PadResponse) []byte {
	respBytes, err := json.Marshal(resp)
	if err != nil {
		panic(err)
	}
	return respBytes
}

func newExceptionResp(err error) *consts.PadResponse {
	var padErr = errs.NewUnknownErr()
	errors.As(err, &padErr)
	return &consts.PadResponse{
		Code:    padErr.Code(),
		Message: padErr.Error(),
	}
}

func newSuccessResp(data []byte) *consts.PadResponse {
	return &consts.PadResponse{
		Message: "success",
		Code:    0,
		Data:    data,
	}
}
