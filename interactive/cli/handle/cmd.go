package handle

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Trinoooo/scribble/consts"
	"github.com/Trinoooo/scribble/program"
	"github.com/Trinoooo/scribble/utils"
)

type ClientWrapper struct {
	Url  *url.URL
	Http *http.Client
}

func (cw *ClientWrapper) HandleInput(str string) {
	fields := strings.Fields(str)
	if len(fields) == 0 {
		return
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "create":
		cw.create(args)
	case "write":
		cw.write(args)
	case "read":
		cw.read(args)
	case "list":
		cw.list()
	default:
		log.Println(utils.WrapWarn("unknown command: %s", cmd))
	}
}

// create <account> <capacity>
func (cw *ClientWrapper) create(args []string) {
	if len(args) < 2 {
		log.Println(utils.WrapWarn("usage: create <account> <capacity>"))
		return
	}

	capacity, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		log.Println(utils.WrapError("parse capacity failed, err: %v", err))
		return
	}

	resp, ok := cw.cmdPost(&consts.PadRequest{
		OperationType: consts.OperationTypeCreate,
		AccountId:     args[0],
		Capacity:      capacity,
	})
	if !ok {
		return
	}
	log.Println(utils.WrapInfo("create success, code: %d", resp.Code))
}

// write <account> <offset> [hex payload]
// 空载荷是合法的空写
func (cw *ClientWrapper) write(args []string) {
	if len(args) < 2 {
		log.Println(utils.WrapWarn("usage: write <account> <offset> [hex]"))
		return
	}

	offset, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		log.Println(utils.WrapError("parse offset failed, err: %v", err))
		return
	}

	var payload []byte
	if len(args) >= 3 {
		payload, err = hex.DecodeString(args[2])
		if err != nil {
			log.Println(utils.WrapError("parse hex payload failed, err: %v", err))
			return
		}
	}

	resp, ok := cw.cmdPost(&consts.PadRequest{
		OperationType: consts.OperationTypeSubmit,
		AccountId:     args[0],
		Instruction:   program.EncodeInstruction(program.CommandWrite, uint32(offset), payload),
	})
	if !ok {
		return
	}
	log.Println(utils.WrapInfo("write success, code: %d", resp.Code))
}

// read <account>
func (cw *ClientWrapper) read(args []string) {
	if len(args) < 1 {
		log.Println(utils.WrapWarn("usage: read <account>"))
		return
	}

	resp, ok := cw.cmdPost(&consts.PadRequest{
		OperationType: consts.OperationTypeRead,
		AccountId:     args[0],
	})
	if !ok {
		return
	}
	log.Printf("# %s\n", hex.EncodeToString(resp.Data))
}

func (cw *ClientWrapper) list() {
	resp, ok := cw.cmdPost(&consts.PadRequest{
		OperationType: consts.OperationTypeList,
	})
	if !ok {
		return
	}
	log.Printf("# %s\n", string(resp.Data))
}

func (cw *ClientWrapper) cmdPost(padReq *consts.PadRequest) (*consts.PadResponse, bool) {
	reqBytes, err := json.Marshal(padReq)
	if err != nil {
		log.Println(utils.WrapError("error occur when marshal req, err: %v", err))
		return nil, false
	}

	resp, err := cw.Http.Post(cw.Url.String(), "application/json", bytes.NewBuffer(reqBytes))
	if err != nil {
		log.Println(utils.WrapError("error occur when http post, err: %v", err))
		return nil, false
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Println(utils.WrapError("error occur when read resp body bytes, err: %v", err))
		return nil, false
	}

	padResp := &consts.PadResponse{}
	err = json.Unmarshal(bodyBytes, padResp)
	if err != nil {
		log.Println(utils.WrapError("error occur when unmarshal resp, err: %v", err))
		return nil, false
	}

	if padResp.Code != 0 {
		log.Println(utils.WrapError("server refused, code: %d, message: %s", padResp.Code, padResp.Message))
		return nil, false
	}

	return padResp, true
}
