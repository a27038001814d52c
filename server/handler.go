package server

import (
	"encoding/json"

	"github.com/Trinoooo/scribble/consts"
	"github.com/Trinoooo/scribble/errs"
)

type HandleFunc func(request *consts.PadRequest) (*consts.PadResponse, error)

func (srv *Server) HandleCreate(req *consts.PadRequest) (*consts.PadResponse, error) {
	_, err := srv.store.Create(req.AccountId, req.Capacity)
	if err != nil {
		return nil, err
	}
	return newSuccessResp(nil), nil
}

// HandleSubmit 对目标账户提交一条指令
// 指令内容的合法性交给调度器判断，这里不拆包
func (srv *Server) HandleSubmit(req *consts.PadRequest) (*consts.PadResponse, error) {
	err := srv.store.Apply(req.AccountId, req.Instruction)
	if err != nil {
		return nil, err
	}
	return newSuccessResp(nil), nil
}

func (srv *Server) HandleRead(req *consts.PadRequest) (*consts.PadResponse, error) {
	acct, err := srv.store.Get(req.AccountId)
	if err != nil {
		return nil, err
	}
	return newSuccessResp(acct.Snapshot()), nil
}

type accountMeta struct {
	AccountId string `json:"account_id"`
	Capacity  int64  `json:"capacity"`
}

func (srv *Server) HandleList(_ *consts.PadRequest) (*consts.PadResponse, error) {
	accounts := srv.store.List()
	metas := make([]*accountMeta, 0, len(accounts))
	for _, acct := range accounts {
		metas = append(metas, &accountMeta{
			AccountId: acct.Id(),
			Capacity:  acct.Capacity(),
		})
	}

	data, err := json.Marshal(metas)
	if err != nil {
		return nil, errs.NewJsonMarshalErr().WithErr(err)
	}
	return newSuccessResp(data), nil
}
