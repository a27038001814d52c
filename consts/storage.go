package consts

import (
	"fmt"

	"github.com/mitchellh/go-homedir"
)

// 配置文件键名
const (
	Store      = "store"
	JournalDir = "journal_dir"
	NoSync     = "no_sync"
	PushAddr   = "push_addr"
)

const (
	StoreMemory  = "memory"
	StoreDurable = "durable"
)

func init() {
	home, _ := homedir.Dir()
	BaseDir = fmt.Sprintf("%s/scribble", home)
	DefaultConfigPath = fmt.Sprintf("%s/config", BaseDir)
	DefaultJournalDir = fmt.Sprintf("%s/journal", BaseDir)
}

var (
	BaseDir           string
	DefaultConfigPath string
	DefaultJournalDir string
)
