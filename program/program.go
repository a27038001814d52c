package program

import (
	"github.com/Trinoooo/scribble/consts"
	"github.com/Trinoooo/scribble/errs"
	"github.com/Trinoooo/scribble/logs"
	"go.uber.org/zap"
)

// Target 调用期间对单个账户数据区的独占可变视图
// 容量在账户创建时固定，调度器不扩容不缩容
// 也不在调用结束后保留引用
type Target struct {
	Id   string
	Data []byte
}

type handleFunc func(target *Target, inst *Instruction) error

var commandHandlers = map[Command]handleFunc{
	CommandWrite: handleWrite,
}

// Execute 对一个目标账户执行一条指令
// 单次调用无状态、同步执行到底，要么完整生效要么不产生任何写入
// 目标账户在调用期间的独占性由宿主保证
func Execute(targets []*Target, instruction []byte) error {
	if len(targets) == 0 {
		e := errs.NewMissingTargetErr()
		logs.Error(e.Error())
		return e
	}
	target := targets[0]

	inst, err := ParseInstruction(instruction)
	if err != nil {
		logs.Error(err.Error(), zap.Int(consts.LogFieldLength, len(instruction)))
		return err
	}

	handler, ok := commandHandlers[inst.Command]
	if !ok {
		e := errs.NewUnknownCommandErr()
		logs.Error(e.Error(), zap.Uint8("command", uint8(inst.Command)))
		return e
	}

	return handler(target, inst)
}

// handleWrite 把载荷覆盖写入目标的 [offset, offset+len(payload)) 区间
// 区间外的字节既不读取也不清理
// 越界判断在uint64下进行，offset+len 不会回绕
// offset等于容量时只允许空载荷
func handleWrite(target *Target, inst *Instruction) error {
	end := uint64(inst.Offset) + uint64(len(inst.Payload))
	if end > uint64(len(target.Data)) {
		e := errs.NewOutOfBoundsErr()
		logs.Error(e.Error(),
			zap.String(consts.LogFieldAccountId, target.Id),
			zap.Uint32(consts.LogFieldOffset, inst.Offset),
			zap.Int(consts.LogFieldLength, len(inst.Payload)),
		)
		return e
	}

	copy(target.Data[inst.Offset:end], inst.Payload)
	logs.Info("write complete",
		zap.String(consts.LogFieldAccountId, target.Id),
		zap.Uint32(consts.LogFieldOffset, inst.Offset),
		zap.Int(consts.LogFieldLength, len(inst.Payload)),
	)
	return nil
}
