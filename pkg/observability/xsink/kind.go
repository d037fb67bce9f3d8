package xsink

import (
	"fmt"
	"strconv"
)

// Kind 日志目的地选择器，构造后不可变。
type Kind int

// 目的地常量。数值与配置文件中 log_dest 键的取值一一对应。
const (
	// KindStderr 直写标准错误流。
	KindStderr Kind = iota

	// KindFile 单一追加写文件。
	KindFile

	// KindRollingFile 按本地日历日滚动的文件。
	KindRollingFile

	// KindSizeFile 按大小滚动的文件（lumberjack 实现）。
	KindSizeFile

	kindCount
)

// Valid 报告选择器是否在合法范围内。
func (k Kind) Valid() bool {
	return k >= KindStderr && k < kindCount
}

// String 返回选择器的可读名称，用于诊断输出与指标属性。
func (k Kind) String() string {
	switch k {
	case KindStderr:
		return "stderr"
	case KindFile:
		return "file"
	case KindRollingFile:
		return "rolling-file"
	case KindSizeFile:
		return "size-file"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// KindFromUint 将配置中的数值转换为目的地选择器。
// 无法识别的取值返回 [ErrUnknownKind]。
func KindFromUint(v uint64) (Kind, error) {
	if v >= uint64(kindCount) {
		return KindStderr, fmt.Errorf("%w: %d", ErrUnknownKind, v)
	}
	return Kind(v), nil
}
