package account

import (
	"sort"
	"sync"

	"github.com/Trinoooo/scribble/consts"
	"github.com/Trinoooo/scribble/errs"
	"github.com/Trinoooo/scribble/logs"
	"github.com/Trinoooo/scribble/program"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// MemoryStore 纯内存账户表，进程退出即丢失
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

func NewMemoryStore(_ *viper.Viper) (Store, error) {
	return newMemoryStore(), nil
}

func newMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: map[string]*Account{},
	}
}

func (ms *MemoryStore) Create(id string, capacity int64) (*Account, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exist := ms.accounts[id]; exist {
		e := errs.NewAccountExistErr()
		logs.Error(e.Error(), zap.String(consts.LogFieldAccountId, id))
		return nil, e
	}

	acct := newAccount(id, capacity)
	ms.accounts[id] = acct
	logs.Info("account created",
		zap.String(consts.LogFieldAccountId, id),
		zap.Int64(consts.LogFieldLength, capacity),
	)
	return acct, nil
}

func (ms *MemoryStore) Get(id string) (*Account, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	acct, exist := ms.accounts[id]
	if !exist {
		e := errs.NewAccountNotFoundErr()
		logs.Error(e.Error(), zap.String(consts.LogFieldAccountId, id))
		return nil, e
	}
	return acct, nil
}

func (ms *MemoryStore) List() []*Account {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	accounts := make([]*Account, 0, len(ms.accounts))
	for _, acct := range ms.accounts {
		accounts = append(accounts, acct)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].id < accounts[j].id
	})
	return accounts
}

// Apply 查找目标账户并在独占访问下执行指令
func (ms *MemoryStore) Apply(id string, instruction []byte) error {
	acct, err := ms.Get(id)
	if err != nil {
		return err
	}

	return acct.With(func(target *program.Target) error {
		return program.Execute([]*program.Target{target}, instruction)
	})
}

func (ms *MemoryStore) Close() error {
	return nil
}
