package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Trinoooo/scribble/consts"
	"github.com/Trinoooo/scribble/errs"
	"github.com/Trinoooo/scribble/program"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T) *Server {
	config := viper.New()
	config.Set(consts.Store, consts.StoreMemory)
	srv, err := NewServerWithConfig(config)
	assert.Nil(t, err)
	return srv
}

func post(t *testing.T, srv *Server, req *consts.PadRequest) *consts.PadResponse {
	reqBytes, err := json.Marshal(req)
	assert.Nil(t, err)

	recorder := httptest.NewRecorder()
	srv.Server(recorder, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(reqBytes)))

	resp := &consts.PadResponse{}
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), resp))
	return resp
}

func TestServerCreateSubmitRead(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, &consts.PadRequest{
		OperationType: consts.OperationTypeCreate,
		AccountId:     "acct-1",
		Capacity:      10,
	})
	assert.Equal(t, int64(0), resp.Code)

	resp = post(t, srv, &consts.PadRequest{
		OperationType: consts.OperationTypeSubmit,
		AccountId:     "acct-1",
		Instruction:   program.EncodeInstruction(program.CommandWrite, 2, []byte{0xAA, 0xBB}),
	})
	assert.Equal(t, int64(0), resp.Code)

	resp = post(t, srv, &consts.PadRequest{
		OperationType: consts.OperationTypeRead,
		AccountId:     "acct-1",
	})
	assert.Equal(t, int64(0), resp.Code)
	assert.Equal(t, []byte{0, 0, 0xAA, 0xBB, 0, 0, 0, 0, 0, 0}, resp.Data)

	resp = post(t, srv, &consts.PadRequest{
		OperationType: consts.OperationTypeList,
	})
	assert.Equal(t, int64(0), resp.Code)
	var metas []*accountMeta
	assert.Nil(t, json.Unmarshal(resp.Data, &metas))
	assert.Len(t, metas, 1)
	assert.Equal(t, "acct-1", metas[0].AccountId)
	assert.Equal(t, int64(10), metas[0].Capacity)

	assert.Nil(t, srv.Close())
}

func TestServerErrorCodes(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, &consts.PadRequest{
		OperationType: consts.OperationTypeCreate,
		AccountId:     "acct-1",
		Capacity:      10,
	})
	assert.Equal(t, int64(0), resp.Code)

	testList := []struct {
		description string
		req         *consts.PadRequest
		code        int64
	}{
		{
			description: "write out of bounds",
			req: &consts.PadRequest{
				OperationType: consts.OperationTypeSubmit,
				AccountId:     "acct-1",
				Instruction:   program.EncodeInstruction(program.CommandWrite, 9, []byte{0xFF, 0xFF}),
			},
			code: errs.OutOfBoundsErrCode,
		},
		{
			description: "unknown command",
			req: &consts.PadRequest{
				OperationType: consts.OperationTypeSubmit,
				AccountId:     "acct-1",
				Instruction:   program.EncodeInstruction(program.Command(1), 0, []byte{0x01}),
			},
			code: errs.UnknownCommandErrCode,
		},
		{
			description: "malformed instruction",
			req: &consts.PadRequest{
				OperationType: consts.OperationTypeSubmit,
				AccountId:     "acct-1",
				Instruction:   []byte{0x00, 0x00, 0x00, 0x00},
			},
			code: errs.MalformedInstructionErrCode,
		},
		{
			description: "account not found",
			req: &consts.PadRequest{
				OperationType: consts.OperationTypeSubmit,
				AccountId:     "acct-miss",
				Instruction:   program.EncodeInstruction(program.CommandWrite, 0, nil),
			},
			code: errs.AccountNotFoundErrCode,
		},
		{
			description: "unsupported operation",
			req: &consts.PadRequest{
				OperationType: consts.OperationType(42),
				AccountId:     "acct-1",
			},
			code: errs.UnsupportedOperationErrCode,
		},
		{
			description: "missing account id",
			req: &consts.PadRequest{
				OperationType: consts.OperationTypeRead,
			},
			code: errs.InvalidParamErrCode,
		},
		{
			description: "zero capacity create",
			req: &consts.PadRequest{
				OperationType: consts.OperationTypeCreate,
				AccountId:     "acct-2",
			},
			code: errs.InvalidParamErrCode,
		},
	}

	for _, item := range testList {
		resp = post(t, srv, item.req)
		assert.Equal(t, item.code, resp.Code, item.description)
	}

	// 失败的提交不改变账户内容
	resp = post(t, srv, &consts.PadRequest{
		OperationType: consts.OperationTypeRead,
		AccountId:     "acct-1",
	})
	assert.Equal(t, make([]byte, 10), resp.Data)

	assert.Nil(t, srv.Close())
}

func TestServerBadJson(t *testing.T) {
	srv := newTestServer(t)

	recorder := httptest.NewRecorder()
	srv.Server(recorder, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json")))

	resp := &consts.PadResponse{}
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), resp))
	assert.Equal(t, int64(errs.JsonUnmarshalErrCode), resp.Code)
	assert.Nil(t, srv.Close())
}

func TestServerDurable(t *testing.T) {
	dir := t.TempDir()
	config := viper.New()
	config.Set(consts.Store, consts.StoreDurable)
	config.Set(consts.JournalDir, dir)

	srv, err := NewServerWithConfig(config)
	assert.Nil(t, err)

	resp := post(t, srv, &consts.PadRequest{
		OperationType: consts.OperationTypeCreate,
		AccountId:     "acct-1",
		Capacity:      4,
	})
	assert.Equal(t, int64(0), resp.Code)
	resp = post(t, srv, &consts.PadRequest{
		OperationType: consts.OperationTypeSubmit,
		AccountId:     "acct-1",
		Instruction:   program.EncodeInstruction(program.CommandWrite, 0, []byte{0x01, 0x02, 0x03, 0x04}),
	})
	assert.Equal(t, int64(0), resp.Code)
	assert.Nil(t, srv.Close())

	srv, err = NewServerWithConfig(config)
	assert.Nil(t, err)
	resp = post(t, srv, &consts.PadRequest{
		OperationType: consts.OperationTypeRead,
		AccountId:     "acct-1",
	})
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, resp.Data)
	assert.Nil(t, srv.Close())
}
