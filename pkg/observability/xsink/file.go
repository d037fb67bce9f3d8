package xsink

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/omeyang/logsink/internal/diag"
	"github.com/omeyang/logsink/pkg/util/xfile"
)

// fileSink 单一追加写文件的 Sink。
//
// threadSafe 为 true 时每次写入持锁；为 false 时不加锁，
// 仅供外层已经串行化访问的拥有者（滚动 Sink）作为委托使用，
// 避免双重加锁。
//
// 写入经过 bufio 缓冲：未刷新计数达到阈值时 Flush 把缓冲推给
// 操作系统并清零，外部读者此后才能看到这些字节。
type fileSink struct {
	levelGate
	mu         sync.Mutex
	threadSafe bool

	dir      string
	base     string
	suffix   string
	fileMode os.FileMode

	flushEvery uint64
	unflushed  uint64

	f *os.File
	w *bufio.Writer

	metrics *sinkMetrics
}

func newFileSink(cfg *config) *fileSink {
	s := &fileSink{
		threadSafe: true,
		dir:        DefaultFilePath,
		base:       DefaultFileBaseName,
		fileMode:   cfg.fileMode,
		flushEvery: DefaultFlushEvery,
		metrics:    newSinkMetrics(cfg.meterProvider, KindFile),
	}
	s.min.Store(int32(LevelInfo))
	return s
}

// newDelegateFileSink 创建不加锁的委托文件 Sink，供滚动 Sink 使用。
// 指标集与拥有者共享，写入计入拥有者的 sink 维度。
func newDelegateFileSink(dir, base, suffix string, level Level, flushEvery uint64, mode os.FileMode, m *sinkMetrics) *fileSink {
	s := &fileSink{
		threadSafe: false,
		dir:        dir,
		base:       base,
		suffix:     suffix,
		fileMode:   mode,
		flushEvery: flushEvery,
		metrics:    m,
	}
	s.min.Store(int32(level))
	return s
}

// Configure 合并级别、刷新阈值与路径三元组（目录、基础名、后缀）。
func (s *fileSink) Configure(src Source) {
	if src == nil {
		return
	}
	s.configureLevel(src)

	s.mu.Lock()
	defer s.mu.Unlock()

	configureFlushEvery(src, &s.flushEvery)
	if v, ok := src.String(KeyFilePath); ok {
		s.dir = v
	}
	if v, ok := src.String(KeyFileBaseName); ok {
		s.base = v
	}
	if v, ok := src.String(KeyFileSuffix); ok {
		s.suffix = v
	}
}

// fullPath 派生完整文件路径：dir/base[.suffix]。
func (s *fileSink) fullPath() string {
	return fullFileName(s.dir, s.base, s.suffix)
}

// Open 确保目录存在（不存在则逐级创建），关闭既有句柄后
// 以追加模式重新打开。追加打开不截断既有内容，Close 后可再次 Open。
func (s *fileSink) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked()
}

func (s *fileSink) openLocked() error {
	path, err := xfile.SanitizePath(s.fullPath())
	if err != nil {
		diag.Printf("invalid log file path <%s>: %v", s.fullPath(), err)
		return fmt.Errorf("xsink: log file path: %w", err)
	}

	if err := xfile.EnsureDir(path); err != nil {
		diag.Printf("failed to create log directory for <%s>: %v", path, err)
		return fmt.Errorf("xsink: create log directory: %w", err)
	}

	s.closeLocked()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, s.fileMode)
	if err != nil {
		diag.Printf("failed to open log file <%s>: %v", path, err)
		return fmt.Errorf("xsink: open log file: %w", err)
	}

	s.f = f
	s.w = bufio.NewWriter(f)
	s.unflushed = 0
	diag.Printf("opened log file <%s>", path)
	return nil
}

// Close 刷新并关闭文件句柄。幂等：已关闭时直接返回 nil。
func (s *fileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *fileSink) closeLocked() error {
	if s.f == nil {
		return nil
	}

	var flushErr error
	if s.w != nil {
		flushErr = s.w.Flush()
	}
	closeErr := s.f.Close()

	s.f = nil
	s.w = nil
	s.unflushed = 0
	return errors.Join(flushErr, closeErr)
}

// Log 级别过滤后追加写入，并应用刷新阈值策略。
func (s *fileSink) Log(msg string, level Level) error {
	if !s.enabled(level) {
		s.metrics.incFiltered()
		return nil
	}

	if s.threadSafe {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return s.writeLocked(msg)
}

// writeLocked 原始写入。调用方必须已持有串行化保证（自身的锁或
// 外层拥有者的锁）。向已关闭的句柄写入返回 ErrClosed，无副作用。
func (s *fileSink) writeLocked(msg string) error {
	if s.w == nil {
		return ErrClosed
	}

	if _, err := s.w.WriteString(msg); err != nil {
		s.metrics.incWriteError()
		return fmt.Errorf("xsink: write log file: %w", err)
	}

	s.unflushed++
	if s.unflushed >= s.flushEvery {
		if err := s.w.Flush(); err != nil {
			s.metrics.incWriteError()
			return fmt.Errorf("xsink: flush log file: %w", err)
		}
		s.unflushed = 0
	}

	s.metrics.incWritten()
	return nil
}
