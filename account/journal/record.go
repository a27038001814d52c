package journal

import (
	"crypto/md5"
	"encoding/binary"

	"github.com/Trinoooo/scribble/errs"
)

const (
	headerLengthSize  = 8  // 记录头中length字段长度
	headerSummarySize = 16 // 记录头中checksum字段长度
	headerSize        = 24 // 记录头总长度
)

type RecordType byte

const (
	RecordTypeCreate RecordType = 1
	RecordTypeWrite  RecordType = 2
)

// Record 日志记录
// 创建记录持有账户容量，写入记录持有完整指令字节流
// 回放时写入记录经由与在线路径相同的调度器生效
type Record struct {
	Type        RecordType
	AccountId   string
	Capacity    int64
	Instruction []byte
}

// encode 记录体编码，存储结构如下：
// | type #1B | idLen #4B | id #nB | capacity #8B 或 instLen #4B + inst #nB |
// 与 wire 指令不同，日志内部编码使用大端
func (rec *Record) encode() []byte {
	idLen := len(rec.AccountId)
	buf := make([]byte, 0, 1+4+idLen+8+len(rec.Instruction))
	buf = append(buf, byte(rec.Type))
	buf = binary.BigEndian.AppendUint32(buf, uint32(idLen))
	buf = append(buf, rec.AccountId...)

	switch rec.Type {
	case RecordTypeCreate:
		buf = binary.BigEndian.AppendUint64(buf, uint64(rec.Capacity))
	case RecordTypeWrite:
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(rec.Instruction)))
		buf = append(buf, rec.Instruction...)
	}
	return buf
}

func decodeRecord(body []byte) (*Record, error) {
	if len(body) < 5 {
		return nil, errs.NewCorruptJournalErr()
	}

	rec := &Record{Type: RecordType(body[0])}
	idLen := int(binary.BigEndian.Uint32(body[1:5]))
	if len(body) < 5+idLen {
		return nil, errs.NewCorruptJournalErr()
	}
	rec.AccountId = string(body[5 : 5+idLen])
	rest := body[5+idLen:]

	switch rec.Type {
	case RecordTypeCreate:
		if len(rest) != 8 {
			return nil, errs.NewCorruptJournalErr()
		}
		rec.Capacity = int64(binary.BigEndian.Uint64(rest))
	case RecordTypeWrite:
		if len(rest) < 4 {
			return nil, errs.NewCorruptJournalErr()
		}
		instLen := int(binary.BigEndian.Uint32(rest[:4]))
		if len(rest) != 4+instLen {
			return nil, errs.NewCorruptJournalErr()
		}
		rec.Instruction = append([]byte{}, rest[4:]...)
	default:
		return nil, errs.NewCorruptJournalErr()
	}
	return rec, nil
}

// buildBinary 组装带校验的完整记录，存储结构如下：
// | length #8B | checksum #16B | body #nB |
func buildBinary(body []byte) []byte {
	buf := make([]byte, 0, headerSize+len(body))
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(body)))
	summary := md5.Sum(body)
	buf = append(buf, summary[:]...)
	return append(buf, body...)
}

// loadBinary 逐条切分并校验记录，任何截断或校验不一致都视为损坏
func loadBinary(data []byte) ([][]byte, error) {
	bodies := make([][]byte, 0)
	for len(data) > 0 {
		if len(data) < headerSize {
			return nil, errs.NewCorruptJournalErr()
		}

		// length先按uint64校验上界，避免转int溢出成负数
		length := binary.BigEndian.Uint64(data[:headerLengthSize])
		if length > uint64(len(data)-headerSize) {
			return nil, errs.NewCorruptJournalErr()
		}

		end := headerSize + int(length)
		body := data[headerSize:end]
		summary := md5.Sum(body)
		if string(summary[:]) != string(data[headerLengthSize:headerSize]) {
			return nil, errs.NewCorruptJournalErr()
		}

		bodies = append(bodies, body)
		data = data[end:]
	}
	return bodies, nil
}
