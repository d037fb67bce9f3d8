package xsink

import (
	"fmt"
	"sync"

	"github.com/omeyang/logsink/internal/diag"
	"github.com/omeyang/logsink/pkg/util/xfile"

	"gopkg.in/natefinch/lumberjack.v2"
)

// size-file Sink 的默认配置。
const (
	// DefaultMaxSizeMB 默认单个日志文件最大大小（MB）。
	DefaultMaxSizeMB = 500

	// DefaultMaxBackups 默认保留的备份文件数量。
	DefaultMaxBackups = 7

	// DefaultMaxAgeDays 默认备份保留天数。
	DefaultMaxAgeDays = 30
)

// sizeSink 按大小滚动的文件 Sink，底层是 lumberjack。
//
// 与日滚动 Sink 互补：按写入量而非日历日触发换文件，并带备份
// 清理与可选压缩。lumberjack 直写文件、不做用户态缓冲，因此
// 刷新阈值对它不适用。
type sizeSink struct {
	levelGate
	mu sync.Mutex

	dir    string
	base   string
	suffix string

	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool

	// lj 为 nil 即处于关闭状态
	lj *lumberjack.Logger

	metrics *sinkMetrics
}

func newSizeSink(cfg *config) *sizeSink {
	s := &sizeSink{
		dir:        DefaultFilePath,
		base:       DefaultFileBaseName,
		maxSizeMB:  DefaultMaxSizeMB,
		maxBackups: DefaultMaxBackups,
		maxAgeDays: DefaultMaxAgeDays,
		metrics:    newSinkMetrics(cfg.meterProvider, KindSizeFile),
	}
	s.min.Store(int32(LevelInfo))
	return s
}

// Configure 合并级别、路径三元组与大小滚动参数。
func (s *sizeSink) Configure(src Source) {
	if src == nil {
		return
	}
	s.configureLevel(src)

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := src.String(KeyFilePath); ok {
		s.dir = v
	}
	if v, ok := src.String(KeyFileBaseName); ok {
		s.base = v
	}
	if v, ok := src.String(KeyFileSuffix); ok {
		s.suffix = v
	}
	if v, ok := src.Uint(KeyMaxSizeMB); ok {
		if v == 0 {
			diag.Printf("max_size_mb 0 out of range, keeping %d", s.maxSizeMB)
		} else {
			s.maxSizeMB = int(v)
		}
	}
	if v, ok := src.Uint(KeyMaxBackups); ok {
		s.maxBackups = int(v)
	}
	if v, ok := src.Uint(KeyMaxAgeDays); ok {
		s.maxAgeDays = int(v)
	}
	if v, ok := src.Uint(KeyCompress); ok {
		s.compress = v != 0
	}
}

// Open 校验路径、确保目录存在并构造 lumberjack 实例。
// lumberjack 延迟到首次写入才真正打开文件。
func (s *sizeSink) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := xfile.SanitizePath(fullFileName(s.dir, s.base, s.suffix))
	if err != nil {
		diag.Printf("invalid log file path <%s>: %v", fullFileName(s.dir, s.base, s.suffix), err)
		return fmt.Errorf("xsink: log file path: %w", err)
	}
	if err := xfile.EnsureDir(path); err != nil {
		diag.Printf("failed to create log directory for <%s>: %v", path, err)
		return fmt.Errorf("xsink: create log directory: %w", err)
	}

	s.closeLocked()

	s.lj = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    s.maxSizeMB,
		MaxBackups: s.maxBackups,
		MaxAge:     s.maxAgeDays,
		Compress:   s.compress,
		LocalTime:  true,
	}
	diag.Printf("opened size-rolling log file <%s>", path)
	return nil
}

// Close 关闭底层文件。幂等：已关闭时直接返回 nil。
func (s *sizeSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *sizeSink) closeLocked() error {
	if s.lj == nil {
		return nil
	}
	err := s.lj.Close()
	s.lj = nil
	if err != nil {
		return fmt.Errorf("xsink: close size-rolling log file: %w", err)
	}
	return nil
}

// Log 级别过滤后写入，大小触发的换文件由 lumberjack 在写入内完成。
func (s *sizeSink) Log(msg string, level Level) error {
	if !s.enabled(level) {
		s.metrics.incFiltered()
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lj == nil {
		return ErrClosed
	}
	if _, err := s.lj.Write([]byte(msg)); err != nil {
		s.metrics.incWriteError()
		return fmt.Errorf("xsink: write size-rolling log file: %w", err)
	}

	s.metrics.incWritten()
	return nil
}
