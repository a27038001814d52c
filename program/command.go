package program

import (
	"encoding/binary"

	"github.com/Trinoooo/scribble/errs"
)

// Command 指令字节流首字节，选择要执行的操作
// 预留其他取值用于后续扩展命令
type Command byte

const (
	CommandWrite Command = 0
)

const (
	headerCommandSize = 1 // 头部command字段长度
	headerOffsetSize  = 4 // 头部offset字段长度
	headerSize        = headerCommandSize + headerOffsetSize
)

// Instruction 单次调用的指令内容，存储结构如下：
// | command #1B | offset #4B 小端 | payload #nB |
// payload长度由指令总长推导，不显式编码
type Instruction struct {
	Command Command
	Offset  uint32
	Payload []byte
}

// ParseInstruction 解析指令字节流
// 指令长度不足以容纳定长头部时返回 MalformedInstruction
func ParseInstruction(data []byte) (*Instruction, error) {
	if len(data) < headerSize {
		return nil, errs.NewMalformedInstructionErr()
	}

	return &Instruction{
		Command: Command(data[0]),
		Offset:  binary.LittleEndian.Uint32(data[headerCommandSize:headerSize]),
		Payload: data[headerSize:],
	}, nil
}

// EncodeInstruction ParseInstruction 的逆操作，客户端与测试使用
func EncodeInstruction(cmd Command, offset uint32, payload []byte) []byte {
	buf := make([]byte, headerSize, headerSize+len(payload))
	buf[0] = byte(cmd)
	binary.LittleEndian.PutUint32(buf[headerCommandSize:headerSize], offset)
	return append(buf, payload...)
}
