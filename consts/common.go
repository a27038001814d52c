package consts

const (
	B = 1 << (iota * 10)
	KB
	MB
	GB
)

const HelpTemplate = `NAME:
   {{.Name}} - {{.Usage}}
USAGE:
   {{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}{{if .Commands}} command [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}
   {{if len .Authors}}
AUTHOR:
   {{range .Authors}}{{ . }}{{end}}
   {{end}}{{if .Commands}}
COMMANDS:
{{range .Commands}}{{if not .HideHelp}}   {{join .Names ", "}}{{ "\t"}}{{.Usage}}{{ "\n" }}{{end}}{{end}}{{end}}{{if .VisibleFlags}}
GLOBAL OPTIONS:
   {{range .VisibleFlags}}{{.}}
   {{end}}{{end}}{{if .Copyright }}
COPYRIGHT:
   {{.Copyright}}
   {{end}}{{if .Version}}
VERSION:
   {{.Version}}
   {{end}}
`

// OperationType 宿主侧操作类型
// 注意和指令字节流中的命令字节区分
// 后者由 program 包解析
type OperationType int64

const (
	OperationTypeUnknown OperationType = 0
	OperationTypeCreate  OperationType = 1
	OperationTypeSubmit  OperationType = 2
	OperationTypeRead    OperationType = 3
	OperationTypeList    OperationType = 4
)

// PadRequest 宿主对外的统一请求结构
// Capacity 仅在创建账户时有意义
// Instruction 仅在提交指令时有意义
type PadRequest struct {
	OperationType OperationType `json:"operation_type"`
	AccountId     string        `json:"account_id"`
	Capacity      int64         `json:"capacity"`
	Instruction   []byte        `json:"instruction"`
}

type PadResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Data    []byte `json:"data"`
}

const (
	LogFieldParams    = "params"
	LogFieldValue     = "value"
	LogFieldAccountId = "account_id"
	LogFieldOffset    = "offset"
	LogFieldLength    = "length"
	LogFieldComponent = "component"
)
