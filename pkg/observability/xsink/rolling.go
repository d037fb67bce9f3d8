package xsink

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/omeyang/logsink/internal/diag"

	retry "github.com/avast/retry-go/v5"
	"github.com/jonboulle/clockwork"
)

// 跨天换文件时重试打开新文件的参数。
// 日界换文件可能与外部目录清理短暂竞争，小步定次重试足以渡过；
// 持久性失败（目录不可写等）会在耗尽后原样返回。
const (
	rotateOpenAttempts = 3
	rotateOpenDelay    = 10 * time.Millisecond
)

// rollingSink 按本地日历日滚动的文件 Sink。
//
// 状态机 {Closed, Open(date)}：Open 以当天日期派生文件名
// base-YYYY-MM-DD 并打开一个不加锁的文件委托；Log 在单把互斥锁内
// 完成"日期检查 → 换文件 → 委托写入"，两个线程不会竞争同一次日界
// 换文件，写入也不会与进行中的换文件交错。换文件走 closeLocked/
// openLocked 原语，不重复抢锁。
//
// 换文件是惰性的：只在某次 Log 观察到日期变更时发生，没有定时器；
// 一整天没有日志就不会为那天创建空文件。
type rollingSink struct {
	levelGate
	mu sync.Mutex

	dir      string
	base     string
	suffix   string
	fileMode os.FileMode

	flushEvery uint64
	clock      clockwork.Clock

	// 最近一次换文件的日历日期；delegate 的文件名日期部分始终与之一致
	year  int
	month time.Month
	day   int

	// delegate 为 nil 即处于 Closed 状态
	delegate *fileSink

	metrics *sinkMetrics
}

func newRollingSink(cfg *config) *rollingSink {
	s := &rollingSink{
		dir:        DefaultFilePath,
		base:       DefaultFileBaseName,
		fileMode:   cfg.fileMode,
		flushEvery: DefaultFlushEvery,
		clock:      cfg.clock,
		metrics:    newSinkMetrics(cfg.meterProvider, KindRollingFile),
	}
	s.min.Store(int32(LevelInfo))
	return s
}

// datedBaseName 派生带日期的文件基础名，月和日补零到两位。
func datedBaseName(base string, year int, month time.Month, day int) string {
	return fmt.Sprintf("%s-%04d-%02d-%02d", base, year, int(month), day)
}

// Configure 合并级别、刷新阈值与路径三元组。
// Open 之后合并的路径字段要到下一次换文件才生效。
func (s *rollingSink) Configure(src Source) {
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

// Open 以当天日期打开文件委托，转入 Open(今天) 状态。
func (s *rollingSink) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked()
}

// openLocked 构造并打开当天的文件委托。调用方必须持锁。
// 成功后 delegate 与最近换文件日期同步更新，保持二者一致的不变量。
func (s *rollingSink) openLocked() error {
	now := s.clock.Now()
	year, month, day := now.Date()

	delegate := newDelegateFileSink(
		s.dir, datedBaseName(s.base, year, month, day), s.suffix,
		s.Level(), s.flushEvery, s.fileMode, s.metrics,
	)

	err := retry.New(
		retry.Attempts(rotateOpenAttempts),
		retry.Delay(rotateOpenDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	).Do(delegate.openLocked)
	if err != nil {
		return err
	}

	s.delegate = delegate
	s.year, s.month, s.day = year, month, day
	return nil
}

// Close 关闭文件委托（如有），转入 Closed 状态。总是返回 nil。
func (s *rollingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	return nil
}

func (s *rollingSink) closeLocked() {
	if s.delegate == nil {
		return
	}
	if err := s.delegate.closeLocked(); err != nil {
		diag.Printf("failed to close rolling log file: %v", err)
	}
	s.delegate = nil
}

// Log 级别过滤后，在锁内检查日期、按需换文件并委托写入。
// Closed 状态下返回 ErrClosed，不触发换文件。
func (s *rollingSink) Log(msg string, level Level) error {
	if !s.enabled(level) {
		s.metrics.incFiltered()
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.delegate == nil {
		return ErrClosed
	}

	year, month, day := s.clock.Now().Date()
	if year != s.year || month != s.month || day != s.day {
		s.closeLocked()
		if err := s.openLocked(); err != nil {
			return err
		}
		s.metrics.incRotation()
	}

	return s.delegate.writeLocked(msg)
}
