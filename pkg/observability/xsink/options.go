package xsink

import (
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/metric"
)

// DefaultFileMode 默认日志文件权限。
const DefaultFileMode os.FileMode = 0600

// config Sink 构造参数。路径、文件名等运行配置走 Configure 合并，
// 这里只放构造期注入点（时钟、输出流、指标、文件权限）。
type config struct {
	clock         clockwork.Clock
	stderr        io.Writer
	meterProvider metric.MeterProvider
	fileMode      os.FileMode
}

// Option Sink 构造选项函数。
type Option func(*config)

func defaultConfig() *config {
	return &config{
		clock:    clockwork.NewRealClock(),
		stderr:   os.Stderr,
		fileMode: DefaultFileMode,
	}
}

// WithClock 注入时钟，滚动 Sink 用它判定日期变更。
// 默认为真实时钟；测试中注入 fake clock 可模拟跨天。
func WithClock(clock clockwork.Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithStderrWriter 替换 stderr Sink 的输出流（仅用于测试）。
func WithStderrWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.stderr = w
		}
	}
}

// WithMeterProvider 设置指标的 MeterProvider。
// 默认使用 otel 全局 MeterProvider（未配置时为 noop，零开销）。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(c *config) {
		if provider != nil {
			c.meterProvider = provider
		}
	}
}

// WithFileMode 设置日志文件权限。
// 默认 0600。仅允许权限位（0000~0777），越界在 New 时报 [ErrInvalidFileMode]。
func WithFileMode(mode os.FileMode) Option {
	return func(c *config) {
		c.fileMode = mode
	}
}
