package xsink

import "io"

// stderrSink 直写标准错误流的 Sink。
//
// Open/Close 是空操作：进程不拥有 stderr，没有可获取或释放的资源。
// 不跟踪刷新阈值——stderr 无本地缓冲状态可言。
// 并发写入依赖底层流自身的原子性，不额外加锁。
type stderrSink struct {
	levelGate
	w       io.Writer
	metrics *sinkMetrics
}

func newStderrSink(cfg *config) *stderrSink {
	s := &stderrSink{
		w:       cfg.stderr,
		metrics: newSinkMetrics(cfg.meterProvider, KindStderr),
	}
	s.min.Store(int32(LevelInfo))
	return s
}

// Configure 只合并级别；文件类键与刷新阈值对 stderr 无意义，忽略。
func (s *stderrSink) Configure(src Source) {
	if src == nil {
		return
	}
	s.configureLevel(src)
}

// Open 空操作。
func (s *stderrSink) Open() error { return nil }

// Close 空操作，幂等。
func (s *stderrSink) Close() error { return nil }

// Log 级别过滤后直写。写入结果无条件报告成功：stderr 故障
// 既无法本地恢复，也不应该反向干扰调用方。
func (s *stderrSink) Log(msg string, level Level) error {
	if !s.enabled(level) {
		s.metrics.incFiltered()
		return nil
	}
	if _, err := io.WriteString(s.w, msg); err != nil {
		s.metrics.incWriteError()
		return nil
	}
	s.metrics.incWritten()
	return nil
}
