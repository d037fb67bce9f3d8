package xlogsys

import (
	"fmt"

	"github.com/omeyang/logsink/internal/diag"
	"github.com/omeyang/logsink/pkg/config/xlogconf"
	"github.com/omeyang/logsink/pkg/observability/xsink"
)

// LogSys 日志系统门面。独占持有一个 Sink；Sink 持有它的文件句柄。
// 零值与 nil 实例上的所有方法都是安全的空操作。
type LogSys struct {
	sink xsink.Sink
	cfg  *xlogconf.Config
}

// New 按配置构造日志系统：读取目的地选择器（缺省 stderr），
// 构造对应 Sink，合并配置并打开。任何一步失败都返回错误且
// 不产生实例。cfg 为 nil 时使用全部默认值（stderr，INFO）。
func New(cfg *xlogconf.Config, opts ...xsink.Option) (*LogSys, error) {
	kind := xsink.KindStderr
	if cfg != nil {
		if v, ok := cfg.Uint(xsink.KeyDestination); ok {
			k, err := xsink.KindFromUint(v)
			if err != nil {
				diag.Printf("unrecognized log destination %d", v)
				return nil, err
			}
			kind = k
		}
	}

	sink, err := xsink.New(kind, opts...)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		sink.Configure(cfg)
	}

	if err := sink.Open(); err != nil {
		return nil, fmt.Errorf("xlogsys: open %s sink: %w", kind, err)
	}

	diag.Printf("log system initialized, destination: %s", kind)
	return &LogSys{sink: sink, cfg: cfg}, nil
}

// Log 把消息交给 Sink 做级别过滤与写入。
// 从不返回错误：写入失败只通过诊断通道尽力报告。
func (s *LogSys) Log(msg string, level xsink.Level) {
	if s == nil || s.sink == nil {
		return
	}
	if err := s.sink.Log(msg, level); err != nil {
		diag.Printf("log write failed: %v", err)
	}
}

// SetLevel 原位更新最小级别。越界值发诊断，原级别保持不变。
// 可与进行中的 Log 并发调用。
func (s *LogSys) SetLevel(level xsink.Level) {
	if s == nil || s.sink == nil {
		return
	}
	if !level.Valid() {
		diag.Printf("invalid log level %d", int(level))
		return
	}
	s.sink.SetLevel(level)
}

// Level 返回当前最小级别。nil 实例返回 LevelInfo。
func (s *LogSys) Level() xsink.Level {
	if s == nil || s.sink == nil {
		return xsink.LevelInfo
	}
	return s.sink.Level()
}

// Close 刷新并关闭 Sink。幂等。
func (s *LogSys) Close() error {
	if s == nil || s.sink == nil {
		return nil
	}
	return s.sink.Close()
}

// WatchConfig 监视构造时使用的配置文件，重载成功后把变更的
// log_level 应用到 Sink（其余键需要重启才能生效）。监视在后台
// goroutine 运行，调用方负责 Stop 返回的 Watcher。
func (s *LogSys) WatchConfig(opts ...xlogconf.WatchOption) (*xlogconf.Watcher, error) {
	if s == nil || s.cfg == nil {
		return nil, ErrNoConfig
	}

	w, err := s.cfg.Watch(func(cfg *xlogconf.Config, err error) {
		if err != nil {
			diag.Printf("log config reload failed: %v", err)
			return
		}
		if v, ok := cfg.Uint(xsink.KeyLevel); ok {
			if l, ok := xsink.LevelFromUint(v); ok {
				s.sink.SetLevel(l)
			} else {
				diag.Printf("reloaded log level %d out of range, keeping %s", v, s.sink.Level())
			}
		}
	}, opts...)
	if err != nil {
		return nil, err
	}

	w.StartAsync()
	return w, nil
}
