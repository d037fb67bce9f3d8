package xlogsys

import (
	"sync"
	"sync/atomic"

	"github.com/omeyang/logsink/internal/diag"
	"github.com/omeyang/logsink/pkg/config/xlogconf"
	"github.com/omeyang/logsink/pkg/observability/xsink"
)

// =============================================================================
// 进程级全局实例
//
// 定位：脚手架/小工具等简单场景。服务端推荐依赖注入（显式持有 LogSys）。
// =============================================================================

// global 全局实例（并发安全）。未初始化时为 nil。
var global atomic.Pointer[LogSys]

// globalMu 串行化 Initialize/Shutdown：并发首次初始化只构造一个实例，
// 失败的初始化不留下半成品。
var globalMu sync.Mutex

// Initialize 构造进程级全局日志系统，幂等。
//
// 已初始化时返回 nil 且无副作用。configPath 为空时使用全部默认值
// （stderr，INFO）并发一条诊断。配置解析失败、目的地无法识别或
// Sink 打开失败都返回错误，且全局保持未初始化——之后的 Log 调用
// 静默空操作，允许修复配置后重试 Initialize。
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global.Load() != nil {
		return nil
	}

	var cfg *xlogconf.Config
	if configPath == "" {
		diag.Printf("no log config file specified, logging to stderr")
	} else {
		diag.Printf("loading log config from <%s>", configPath)
		c, err := xlogconf.New(configPath)
		if err != nil {
			diag.Printf("failed to load log config: %v", err)
			return err
		}
		cfg = c
	}

	ls, err := New(cfg)
	if err != nil {
		return err
	}

	global.Store(ls)
	return nil
}

// Initialized 报告全局实例是否已构造。
func Initialized() bool {
	return global.Load() != nil
}

// Log 使用全局实例记录一条消息。未初始化时为空操作。
func Log(msg string, level xsink.Level) {
	global.Load().Log(msg, level)
}

// SetLevel 更新全局实例的最小级别。未初始化时为空操作。
func SetLevel(level xsink.Level) {
	global.Load().SetLevel(level)
}

// Shutdown 关闭并清除全局实例（进程收尾或测试）。
// 未初始化时为空操作。之后可重新 Initialize。
func Shutdown() error {
	globalMu.Lock()
	defer globalMu.Unlock()

	ls := global.Swap(nil)
	return ls.Close()
}
