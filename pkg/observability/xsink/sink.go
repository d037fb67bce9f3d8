package xsink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/omeyang/logsink/internal/diag"
)

// 编译时接口检查
var (
	_ Sink = (*stderrSink)(nil)
	_ Sink = (*fileSink)(nil)
	_ Sink = (*rollingSink)(nil)
	_ Sink = (*sizeSink)(nil)
)

// 配置键。与外部配置文件中的键名一一对应。
const (
	// KeyDestination 日志目的地选择器（0 stderr，1 file，2 rolling-file，3 size-file）。
	KeyDestination = "log_dest"

	// KeyLevel 最小日志级别（0~3）。
	KeyLevel = "log_level"

	// KeyFilePath 日志目录路径。
	KeyFilePath = "file_path"

	// KeyFileBaseName 日志文件基础名。
	KeyFileBaseName = "file_base_name"

	// KeyFileSuffix 日志文件后缀（带不带前导 "." 均可）。
	KeyFileSuffix = "file_suffix"

	// KeyFlushEvery 刷新阈值：累计多少次写入后刷一次缓冲。
	KeyFlushEvery = "num_logs_to_flush"

	// KeyMaxSizeMB 单个文件最大大小（MB），仅 size-file 识别。
	KeyMaxSizeMB = "max_size_mb"

	// KeyMaxBackups 保留的备份文件数量，仅 size-file 识别。
	KeyMaxBackups = "max_backups"

	// KeyMaxAgeDays 备份保留天数，仅 size-file 识别。
	KeyMaxAgeDays = "max_age_days"

	// KeyCompress 是否压缩备份（0/1），仅 size-file 识别。
	KeyCompress = "compress"
)

// 文件类 Sink 的默认配置。
const (
	// DefaultFilePath 默认日志目录。
	DefaultFilePath = "/tmp/log"

	// DefaultFileBaseName 默认文件基础名。
	DefaultFileBaseName = "log"

	// DefaultFlushEvery 默认刷新阈值：每写一条即刷。
	DefaultFlushEvery = 1
)

// Source 是 Sink 读取配置的最小接口。
// 取值函数返回键是否存在；缺失的键保留当前值/默认值。
// [MapSource] 与 xlogconf.Config 都实现了该接口。
type Source interface {
	// Uint 返回 key 对应的非负整数值。
	Uint(key string) (uint64, bool)

	// String 返回 key 对应的字符串值。
	String(key string) (string, bool)
}

// MapSource 是基于内存 map 的 Source 实现，用于编程式配置与测试。
type MapSource map[string]any

// Uint 实现 Source 接口。支持常见整数类型，负值视为缺失。
func (m MapSource) Uint(key string) (uint64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case uint:
		return uint64(n), true
	case uint64:
		return n, true
	default:
		return 0, false
	}
}

// String 实现 Source 接口。
func (m MapSource) String(key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Sink 是日志消息的具体去向。
//
// 扩展新实现时，必须满足以下约定：
//   - Configure 是尽力而为的合并：无法识别的键忽略，越界值忽略并发诊断
//   - Close 幂等，Close 后允许再次 Open
//   - 向已关闭的 Sink 写入返回 [ErrClosed]，且无副作用
//   - Log 在级别不足时返回 nil 且不产生任何 I/O
type Sink interface {
	// Configure 从配置源合并可识别的键到当前字段。
	Configure(src Source)

	// Open 获取底层资源（文件句柄；stderr 为空操作）。
	Open() error

	// Close 刷新并释放底层资源。
	Close() error

	// Log 在级别过滤通过后按原样追加消息（不附加换行与时间戳）。
	Log(msg string, level Level) error

	// Level 返回当前最小级别。
	Level() Level

	// SetLevel 原位更新最小级别，可与进行中的 Log 并发调用。
	SetLevel(level Level)
}

// New 按目的地选择器构造对应的 Sink。
// 无法识别的选择器返回 [ErrUnknownKind]；构造完成后 Kind 不可再变。
func New(kind Kind, opts ...Option) (Sink, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	// 文件权限仅允许权限位，拒绝文件类型位与 setuid/setgid
	if cfg.fileMode&^os.FileMode(0o777) != 0 {
		return nil, fmt.Errorf("%w: %04o, only permission bits (0000~0777) allowed",
			ErrInvalidFileMode, cfg.fileMode)
	}

	switch kind {
	case KindStderr:
		return newStderrSink(cfg), nil
	case KindFile:
		return newFileSink(cfg), nil
	case KindRollingFile:
		return newRollingSink(cfg), nil
	case KindSizeFile:
		return newSizeSink(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
}

// levelGate 所有 Sink 内嵌的级别过滤器。
// 级别用原子变量保存：SetLevel 不与写锁竞争，变更及时可见即可。
type levelGate struct {
	min atomic.Int32
}

// Level 返回当前最小级别。
func (g *levelGate) Level() Level {
	return Level(g.min.Load())
}

// SetLevel 原位更新最小级别。越界值被拒绝并发出诊断，原级别保持不变。
func (g *levelGate) SetLevel(level Level) {
	if !level.Valid() {
		diag.Printf("invalid log level %d, keeping %s", int(level), g.Level())
		return
	}
	if Level(g.min.Swap(int32(level))) != level {
		diag.Printf("log level has been reset to: %s", level)
	}
}

// enabled 报告指定级别的消息是否应当写入。
func (g *levelGate) enabled(level Level) bool {
	return level >= g.Level()
}

// configureLevel 从配置源合并 log_level 键。越界值忽略并发诊断。
// 与启动日志保持一致：合并后总是报告生效的级别。
func (g *levelGate) configureLevel(src Source) {
	if v, ok := src.Uint(KeyLevel); ok {
		if l, ok := LevelFromUint(v); ok {
			g.min.Store(int32(l))
		} else {
			diag.Printf("log level %d out of range, keeping %s", v, g.Level())
		}
	}
	diag.Printf("log level: %s", g.Level())
}

// configureFlushEvery 从配置源合并刷新阈值。0 归一化为 1（每写必刷）。
func configureFlushEvery(src Source, flushEvery *uint64) {
	if v, ok := src.Uint(KeyFlushEvery); ok {
		if v == 0 {
			v = 1
		}
		*flushEvery = v
	}
}

// fullFileName 派生完整文件路径：dir/base[.suffix]。
// 后缀不以 "." 开头时自动补一个；后缀恰好为 "." 等价于无后缀。
func fullFileName(dir, base, suffix string) string {
	name := base
	if suffix != "" && suffix != "." {
		if !strings.HasPrefix(suffix, ".") {
			name += "."
		}
		name += suffix
	}
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
