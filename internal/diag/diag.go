// Package diag 提供日志子系统自身的诊断通道。
//
// 日志子系统内部的运行消息（启动、打开文件失败、级别变更等）不能走
// 业务日志路径——日志写入失败时再通过自身记录会产生递归写入。
// 因此统一输出到标准错误，格式固定：
//
//	[<ctime 风格时间戳>] [LOG SYS] <message>
//
// 该通道独立于配置的日志目的地，即使主日志写入文件也始终存在。
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetOutput 重定向诊断输出，返回恢复函数（仅用于测试）。
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()

	prev := out
	out = w
	return func() {
		mu.Lock()
		defer mu.Unlock()
		out = prev
	}
}

// Printf 向诊断通道写入一条消息。
// 时间戳使用 time.ANSIC（ctime 风格，固定 24 字符）。
// 写入失败被静默忽略：诊断通道是尽力而为的，不能反向影响调用方。
func Printf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	fmt.Fprintf(out, "[%s] [LOG SYS] %s\n",
		time.Now().Format(time.ANSIC), fmt.Sprintf(format, args...))
}
