package account

import (
	"testing"

	"github.com/Trinoooo/scribble/consts"
	"github.com/Trinoooo/scribble/errs"
	"github.com/Trinoooo/scribble/program"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStore(t *testing.T) {
	store, err := NewMemoryStore(viper.New())
	assert.Nil(t, err)

	acct, err := store.Create("acct-1", 10)
	assert.Nil(t, err)
	assert.Equal(t, int64(10), acct.Capacity())

	_, err = store.Create("acct-1", 10)
	assert.Equal(t, int64(errs.AccountExistErrCode), errs.GetCode(err))

	_, err = store.Get("acct-miss")
	assert.Equal(t, int64(errs.AccountNotFoundErrCode), errs.GetCode(err))

	err = store.Apply("acct-1", program.EncodeInstruction(program.CommandWrite, 2, []byte{0xAA, 0xBB}))
	assert.Nil(t, err)
	assert.Equal(t, []byte{0, 0, 0xAA, 0xBB, 0, 0, 0, 0, 0, 0}, acct.Snapshot())

	// 失败的指令不产生任何写入
	err = store.Apply("acct-1", program.EncodeInstruction(program.CommandWrite, 9, []byte{0xFF, 0xFF}))
	assert.Equal(t, int64(errs.OutOfBoundsErrCode), errs.GetCode(err))
	assert.Equal(t, []byte{0, 0, 0xAA, 0xBB, 0, 0, 0, 0, 0, 0}, acct.Snapshot())

	_, err = store.Create("acct-0", 4)
	assert.Nil(t, err)
	accounts := store.List()
	assert.Len(t, accounts, 2)
	assert.Equal(t, "acct-0", accounts[0].Id())
	assert.Equal(t, "acct-1", accounts[1].Id())

	assert.Nil(t, store.Close())
}

func TestDurableStore(t *testing.T) {
	dir := t.TempDir()
	config := viper.New()
	config.Set(consts.Store, consts.StoreDurable)
	config.Set(consts.JournalDir, dir)

	store, err := NewDurableStore(config)
	assert.Nil(t, err)

	_, err = store.Create("acct-1", 10)
	assert.Nil(t, err)
	assert.Nil(t, store.Apply("acct-1", program.EncodeInstruction(program.CommandWrite, 2, []byte{0xAA, 0xBB})))

	// 失败的调用不落日志
	err = store.Apply("acct-1", program.EncodeInstruction(program.Command(7), 0, []byte{0x01}))
	assert.Equal(t, int64(errs.UnknownCommandErrCode), errs.GetCode(err))
	err = store.Apply("acct-miss", program.EncodeInstruction(program.CommandWrite, 0, nil))
	assert.Equal(t, int64(errs.AccountNotFoundErrCode), errs.GetCode(err))

	assert.Nil(t, store.Close())

	// 重启回放
	store, err = NewDurableStore(config)
	assert.Nil(t, err)
	acct, err := store.Get("acct-1")
	assert.Nil(t, err)
	assert.Equal(t, []byte{0, 0, 0xAA, 0xBB, 0, 0, 0, 0, 0, 0}, acct.Snapshot())
	assert.Nil(t, store.Close())
}

func TestBuilderMap(t *testing.T) {
	_, exist := BuilderMap[consts.StoreMemory]
	assert.True(t, exist)
	_, exist = BuilderMap[consts.StoreDurable]
	assert.True(t, exist)
}
