package journal

import (
	goerrors "errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"

	"github.com/Trinoooo/scribble/consts"
	"github.com/Trinoooo/scribble/errs"
	"github.com/Trinoooo/scribble/logs"
	"github.com/Trinoooo/scribble/utils"
	"github.com/bytedance/gopkg/collection/lscq"
	"github.com/bytedance/gopkg/util/gopool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	dataFileName = "journal"
	lockFileName = ".lock"
)

var journalLogs = logs.With("journal")

// 测试环境下缩短刷盘周期
func syncInterval() time.Duration {
	return utils.GetValueOnEnv(time.Second, 10*time.Millisecond).(time.Duration)
}

var DefaultOptions = &Options{
	dataPerm: 0660,
	dirPerm:  0770,
	noSync:   false,
}

// Options 日志选项
type Options struct {
	// dirPerm 日志目录文件权限位
	// dataPerm 日志数据文件权限位
	dataPerm, dirPerm os.FileMode
	// noSync 当设置为true时，追加的记录先进入内存队列
	// 由后台协程周期性落盘。可以提高写性能，但需要承担
	// 数据丢失的风险。
	noSync bool
}

func NewOptions() *Options {
	return &Options{
		dataPerm: DefaultOptions.dataPerm,
		dirPerm:  DefaultOptions.dirPerm,
		noSync:   DefaultOptions.noSync,
	}
}

func (opts *Options) SetDataPerm(dataPerm os.FileMode) *Options {
	opts.dataPerm = dataPerm
	return opts
}

func (opts *Options) SetDirPerm(dirPerm os.FileMode) *Options {
	opts.dirPerm = dirPerm
	return opts
}

func (opts *Options) SetNoSync() *Options {
	opts.noSync = true
	return opts
}

func (opts *Options) check() error {
	if opts.dataPerm == 0 || opts.dataPerm > 0777 {
		return errs.NewInvalidParamErr()
	}

	if opts.dirPerm == 0 || opts.dirPerm > 0777 {
		return errs.NewInvalidParamErr()
	}

	return nil
}

// Journal 追加式操作日志
// 账户创建与生效的写指令顺序落盘，回放可重建账户内容
type Journal struct {
	mu     sync.Mutex
	opts   *Options
	path   string   // path 日志目录路径
	fd     *os.File // fd 数据文件描述符
	lockFd *os.File // lockFd 锁文件描述符，flock防止多宿主共用目录
	closed bool

	// noSync模式下的异步落盘管道
	// queue 存待写记录，notifier 用于唤醒后台协程
	// syncErr 记录后台落盘错误，后续Append直接返回
	queue    *lscq.PointerQueue
	notifier *utils.UnboundChan
	done     chan struct{}
	syncErr  atomic.Value
}

func Open(dirPath string, opts *Options) (*Journal, error) {
	if opts == nil {
		opts = DefaultOptions
	}

	err := opts.check()
	if err != nil {
		return nil, err
	}

	j := &Journal{
		path: dirPath,
		opts: opts,
	}

	if err = j.init(); err != nil {
		return nil, err
	}

	if j.opts.noSync {
		j.queue = lscq.NewPointer()
		j.notifier = utils.NewUnboundChan()
		j.done = make(chan struct{})
		gopool.Go(j.syncLoop)
	}

	return j, nil
}

// init 准备目录、抢占锁文件、打开数据文件
func (j *Journal) init() error {
	stat, err := os.Stat(j.path)
	if goerrors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(j.path, j.opts.dirPerm); err != nil {
			return errs.NewMkdirErr().WithErr(err)
		}
	} else if err != nil {
		return errs.NewFileStatErr().WithErr(err)
	} else if !stat.IsDir() {
		return errs.NewInvalidParamErr()
	}

	lockFd, err := utils.CheckAndCreateFile(
		filepath.Join(j.path, lockFileName),
		os.O_RDWR|os.O_CREATE,
		j.opts.dataPerm,
	)
	if err != nil {
		return err
	}
	if err = syscall.Flock(int(lockFd.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = lockFd.Close()
		return errs.NewFlockFileErr().WithErr(err)
	}
	j.lockFd = lockFd

	fd, err := utils.CheckAndCreateFile(
		filepath.Join(j.path, dataFileName),
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		j.opts.dataPerm,
	)
	if err != nil {
		return err
	}
	j.fd = fd
	return nil
}

// Replay 从头遍历日志，对每条记录执行fn
// 在 Append 之前调用，日志损坏时整体拒绝打开
func (j *Journal) Replay(fn func(rec *Record) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return errs.NewJournalClosedErr()
	}

	if _, err := j.fd.Seek(0, io.SeekStart); err != nil {
		return errs.NewReadFileErr().WithErr(err)
	}

	all, err := io.ReadAll(j.fd)
	if err != nil {
		return errs.NewReadFileErr().WithErr(err)
	}

	bodies, err := loadBinary(all)
	if err != nil {
		journalLogs.Error(err.Error(), zap.String(consts.LogFieldParams, j.path))
		return err
	}

	for _, body := range bodies {
		rec, err := decodeRecord(body)
		if err != nil {
			return err
		}
		if err = fn(rec); err != nil {
			return err
		}
	}
	return nil
}

// Append 追加一条记录
// 默认实现写入并立刻落盘，noSync模式下只入队
func (j *Journal) Append(rec *Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return errs.NewJournalClosedErr()
	}

	b := buildBinary(rec.encode())
	if j.opts.noSync {
		// 后台协程已出错时拒绝继续入队，避免静默丢记录
		if v := j.syncErr.Load(); v != nil {
			return v.(error)
		}
		j.queue.Enqueue(unsafe.Pointer(&b))
		j.notifier.In()
		return nil
	}

	return j.write(b)
}

func (j *Journal) write(b []byte) error {
	written := 0
	for written < len(b) {
		n, err := j.fd.Write(b[written:])
		if err != nil {
			return errs.NewWriteFileErr().WithErr(err)
		}
		written += n
	}

	if err := j.fd.Sync(); err != nil {
		return errs.NewSyncFileErr().WithErr(err)
	}
	return nil
}

// syncLoop 后台协程消费队列并周期性刷盘
// 队列排空且通知关闭后退出
func (j *Journal) syncLoop() {
	defer close(j.done)
	ticker := time.NewTicker(syncInterval())
	defer ticker.Stop()

	dirty := false
	for j.notifier.Out() {
		data, ok := j.queue.Dequeue()
		if !ok {
			continue
		}

		b := *(*[]byte)(data)
		written := 0
		for written < len(b) {
			n, err := j.fd.Write(b[written:])
			if err != nil {
				j.syncErr.Store(errs.NewWriteFileErr().WithErr(err))
				journalLogs.Error(errors.Wrap(err, "background sync write").Error())
				return
			}
			written += n
		}
		dirty = true

		select {
		case <-ticker.C:
			if err := j.fd.Sync(); err != nil {
				j.syncErr.Store(errs.NewSyncFileErr().WithErr(err))
				journalLogs.Error(errors.Wrap(err, "background sync").Error())
				return
			}
			dirty = false
		default:
		}
	}

	if dirty {
		if err := j.fd.Sync(); err != nil {
			j.syncErr.Store(errs.NewSyncFileErr().WithErr(err))
			journalLogs.Error(errors.Wrap(err, "final sync").Error())
		}
	}
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true

	// 等后台协程排空队列
	if j.opts.noSync {
		j.notifier.Close()
		<-j.done
	}

	var err error
	if e := j.fd.Sync(); e != nil {
		err = errs.NewSyncFileErr().WithErr(e)
	}
	if e := j.fd.Close(); e != nil {
		err = errs.NewCloseFileErr().WithErr(e)
	}
	if e := syscall.Flock(int(j.lockFd.Fd()), syscall.LOCK_UN); e != nil {
		err = errs.NewFlockFileErr().WithErr(e)
	}
	if e := j.lockFd.Close(); e != nil {
		err = errs.NewCloseFileErr().WithErr(e)
	}
	return err
}
