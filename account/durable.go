package account

import (
	"github.com/Trinoooo/scribble/account/journal"
	"github.com/Trinoooo/scribble/consts"
	"github.com/Trinoooo/scribble/logs"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DurableStore 内存账户表 + 操作日志
// 创建与生效的写指令先应用后落盘，重启时回放日志重建
type DurableStore struct {
	mem     *MemoryStore
	journal *journal.Journal
}

func NewDurableStore(config *viper.Viper) (Store, error) {
	dir := config.GetString(consts.JournalDir)
	if dir == "" {
		dir = consts.DefaultJournalDir
	}

	opts := journal.NewOptions()
	if config.GetBool(consts.NoSync) {
		opts.SetNoSync()
	}

	jn, err := journal.Open(dir, opts)
	if err != nil {
		return nil, err
	}

	ds := &DurableStore{
		mem:     newMemoryStore(),
		journal: jn,
	}

	// 回放经过与在线请求相同的路径
	// 日志损坏会以相同的错误码暴露出来
	if err = ds.replay(); err != nil {
		_ = jn.Close()
		return nil, err
	}

	return ds, nil
}

func (ds *DurableStore) replay() error {
	count := 0
	err := ds.journal.Replay(func(rec *journal.Record) error {
		count++
		switch rec.Type {
		case journal.RecordTypeCreate:
			_, e := ds.mem.Create(rec.AccountId, rec.Capacity)
			return e
		default:
			return ds.mem.Apply(rec.AccountId, rec.Instruction)
		}
	})
	if err != nil {
		return err
	}

	logs.Info("journal replayed", zap.Int(consts.LogFieldLength, count))
	return nil
}

func (ds *DurableStore) Create(id string, capacity int64) (*Account, error) {
	acct, err := ds.mem.Create(id, capacity)
	if err != nil {
		return nil, err
	}

	err = ds.journal.Append(&journal.Record{
		Type:      journal.RecordTypeCreate,
		AccountId: id,
		Capacity:  capacity,
	})
	if err != nil {
		return nil, err
	}
	return acct, nil
}

func (ds *DurableStore) Get(id string) (*Account, error) {
	return ds.mem.Get(id)
}

func (ds *DurableStore) List() []*Account {
	return ds.mem.List()
}

// Apply 指令生效后才写日志，失败的调用不留痕
func (ds *DurableStore) Apply(id string, instruction []byte) error {
	if err := ds.mem.Apply(id, instruction); err != nil {
		return err
	}

	return ds.journal.Append(&journal.Record{
		Type:        journal.RecordTypeWrite,
		AccountId:   id,
		Instruction: instruction,
	})
}

func (ds *DurableStore) Close() error {
	return ds.journal.Close()
}
