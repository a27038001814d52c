package account

import (
	"github.com/Trinoooo/scribble/consts"
	"github.com/spf13/viper"
)

// Store 账户的分配与查找归宿主所有
// Apply 把一条指令字节流作用到指定账户上
type Store interface {
	Create(id string, capacity int64) (*Account, error)
	Get(id string) (*Account, error)
	List() []*Account
	Apply(id string, instruction []byte) error
	Close() error
}

type Builder func(config *viper.Viper) (Store, error)

var BuilderMap = map[string]Builder{
	consts.StoreMemory:  NewMemoryStore,
	consts.StoreDurable: NewDurableStore,
}
