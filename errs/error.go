package errs

import (
	"errors"
	"fmt"
)

type PadErr struct {
	msg  string
	code int64
	err  error
}

// Error 输出格式：
// [错误码] 错误类型描述 ( => 包含错误详细描述 )
// 解释：(xxx) 表示可选内容
func (pe *PadErr) Error() string {
	details := fmt.Sprintf("[%d] %s", pe.code, pe.msg)
	if pe.err != nil {
		details += fmt.Sprintf(" => %s", pe.err)
	}

	return details
}

func (pe *PadErr) Code() int64 {
	return pe.code
}

func (pe *PadErr) WithErr(err error) *PadErr {
	pe.err = err
	return pe
}

func GetCode(err error) int64 {
	var pe *PadErr
	if errors.As(err, &pe) {
		return pe.code
	}
	return UnknownErrCode
}

const (
	UnknownErrCode              = 0
	InvalidParamErrCode         = 100001
	JsonMarshalErrCode          = 100002
	JsonUnmarshalErrCode        = 100003
	UnsupportedOperationErrCode = 100004
	OpenFileErrCode             = 100005
	DirNotExistErrCode          = 100006
	FileNoPermissionErrCode     = 100007
	FileStatErrCode             = 100008
	MkdirErrCode                = 100009
	ReadFileErrCode             = 100010
	WriteFileErrCode            = 100011
	SyncFileErrCode             = 100012
	CloseFileErrCode            = 100013
	FlockFileErrCode            = 100014
	CorruptJournalErrCode       = 100015
	JournalClosedErrCode        = 100016
	AccountExistErrCode         = 100017
	AccountNotFoundErrCode      = 100018
	StoreNotFoundErrCode        = 100019
	ReadSocketErrCode           = 100020
	WriteSocketErrCode          = 100021
	MissingTargetErrCode        = 200001
	MalformedInstructionErrCode = 200002
	OutOfBoundsErrCode          = 200003
	UnknownCommandErrCode       = 200004
)

func NewUnknownErr() *PadErr {
	return &PadErr{msg: "unknown error", code: UnknownErrCode}
}

func NewInvalidParamErr() *PadErr {
	return &PadErr{msg: "invalid params", code: InvalidParamErrCode}
}

func NewJsonMarshalErr() *PadErr {
	return &PadErr{msg: "json marshal failed", code: JsonMarshalErrCode}
}

func NewJsonUnmarshalErr() *PadErr {
	return &PadErr{msg: "json unmarshal failed", code: JsonUnmarshalErrCode}
}

func NewUnsupportedOperationErr() *PadErr {
	return &PadErr{msg: "unsupported operation type", code: UnsupportedOperationErrCode}
}

func NewOpenFileErr() *PadErr {
	return &PadErr{msg: "open file failed", code: OpenFileErrCode}
}

func NewDirNotExistErr() *PadErr {
	return &PadErr{msg: "directory not exist", code: DirNotExistErrCode}
}

func NewFileNoPermissionErr() *PadErr {
	return &PadErr{msg: "file no permission", code: FileNoPermissionErrCode}
}

func NewFileStatErr() *PadErr {
	return &PadErr{msg: "file stat failed", code: FileStatErrCode}
}

func NewMkdirErr() *PadErr {
	return &PadErr{msg: "mkdir failed", code: MkdirErrCode}
}

func NewReadFileErr() *PadErr {
	return &PadErr{msg: "read file failed", code: ReadFileErrCode}
}

func NewWriteFileErr() *PadErr {
	return &PadErr{msg: "write file failed", code: WriteFileErrCode}
}

func NewSyncFileErr() *PadErr {
	return &PadErr{msg: "sync file failed", code: SyncFileErrCode}
}

func NewCloseFileErr() *PadErr {
	return &PadErr{msg: "close file failed", code: CloseFileErrCode}
}

func NewFlockFileErr() *PadErr {
	return &PadErr{msg: "flock file failed", code: FlockFileErrCode}
}

func NewCorruptJournalErr() *PadErr {
	return &PadErr{msg: "journal content corrupt", code: CorruptJournalErrCode}
}

func NewJournalClosedErr() *PadErr {
	return &PadErr{msg: "journal already closed", code: JournalClosedErrCode}
}

func NewAccountExistErr() *PadErr {
	return &PadErr{msg: "account already exist", code: AccountExistErrCode}
}

func NewAccountNotFoundErr() *PadErr {
	return &PadErr{msg: "account not found", code: AccountNotFoundErrCode}
}

func NewStoreNotFoundErr() *PadErr {
	return &PadErr{msg: "store not found", code: StoreNotFoundErrCode}
}

func NewReadSocketErr() *PadErr {
	return &PadErr{msg: "read socket failed", code: ReadSocketErrCode}
}

func NewWriteSocketErr() *PadErr {
	return &PadErr{msg: "write socket failed", code: WriteSocketErrCode}
}

func NewMissingTargetErr() *PadErr {
	return &PadErr{msg: "missing target account", code: MissingTargetErrCode}
}

func NewMalformedInstructionErr() *PadErr {
	return &PadErr{msg: "instruction data too short", code: MalformedInstructionErrCode}
}

func NewOutOfBoundsErr() *PadErr {
	return &PadErr{msg: "write would overflow account data", code: OutOfBoundsErrCode}
}

func NewUnknownCommandErr() *PadErr {
	return &PadErr{msg: "unknown command", code: UnknownCommandErrCode}
}
