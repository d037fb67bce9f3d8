package xfile

import "errors"

// 路径校验相关错误。
var (
	// ErrEmptyPath 表示路径为空。
	ErrEmptyPath = errors.New("xfile: empty path")

	// ErrNullByte 表示路径包含空字节。
	ErrNullByte = errors.New("xfile: path contains null byte")

	// ErrPathTraversal 表示路径包含 ".." 穿越段。
	ErrPathTraversal = errors.New("xfile: path traversal")

	// ErrInvalidPath 表示路径格式无效（如以分隔符结尾的目录路径）。
	ErrInvalidPath = errors.New("xfile: invalid path")

	// ErrInvalidPerm 表示目录权限缺少所有者执行位。
	ErrInvalidPerm = errors.New("xfile: invalid permission")
)
