package consts

const (
	Host    = "SCRIBBLE_HOST"    // 主机名，目前只支持ip，后续考虑域名/dns
	Port    = "SCRIBBLE_PORT"    // 端口
	Durable = "SCRIBBLE_DURABLE" // 持久化
	Home    = "HOME"             // 家目录
)
