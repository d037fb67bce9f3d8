package xsink

import "errors"

// Sink 构造与写入相关错误。
var (
	// ErrUnknownKind 表示无法识别的日志目的地选择器。
	ErrUnknownKind = errors.New("xsink: unknown sink kind")

	// ErrClosed 表示 Sink 已关闭（或尚未打开）。
	ErrClosed = errors.New("xsink: sink is closed")

	// ErrInvalidFileMode 表示文件权限包含非权限位（仅允许 0000~0777）。
	ErrInvalidFileMode = errors.New("xsink: invalid file mode")
)
