package account

import (
	"sync"

	"github.com/Trinoooo/scribble/program"
	"github.com/Trinoooo/scribble/utils"
)

// Account 宿主持有的定容账户
// 数据区在创建时一次性分配，之后只会被原地覆盖写
type Account struct {
	mu   sync.Mutex
	id   string
	data []byte
}

func newAccount(id string, capacity int64) *Account {
	return &Account{
		id:   id,
		data: make([]byte, capacity),
	}
}

func (acct *Account) Id() string {
	return acct.id
}

func (acct *Account) Capacity() int64 {
	return int64(len(acct.data))
}

// With 持锁状态下把数据区作为调用目标暴露给fn
// 保证单次调用期间的独占可变访问，fn返回后引用不外泄
func (acct *Account) With(fn func(target *program.Target) error) error {
	var err error
	utils.WrapLock(&acct.mu, func() {
		err = fn(&program.Target{Id: acct.id, Data: acct.data})
	})
	return err
}

// Snapshot 返回数据区的拷贝，用于读请求
func (acct *Account) Snapshot() []byte {
	var snapshot []byte
	utils.WrapLock(&acct.mu, func() {
		snapshot = append([]byte{}, acct.data...)
	})
	return snapshot
}
