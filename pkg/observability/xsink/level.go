package xsink

import (
	"fmt"
	"strings"
)

// Level 日志级别，有序枚举：DEBUG < INFO < WARNING < ERROR。
// 消息级别 >= 配置的最小级别时才会写入。
type Level int

// 日志级别常量。数值与配置文件中 log_level 键的取值一一对应。
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError

	// levelCount 级别总数，用于范围校验。合法级别满足 DEBUG <= level < levelCount。
	levelCount
)

// Valid 报告级别是否在合法范围内。
func (l Level) Valid() bool {
	return l >= LevelDebug && l < levelCount
}

// String 返回级别的大写名称。
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel 解析字符串为日志级别。
// 支持 debug/info/warning/warn/error（大小写不敏感，自动 TrimSpace）。
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("xsink: unknown level %q", s)
	}
}

// LevelFromUint 将配置中的数值转换为级别，越界时返回 false。
func LevelFromUint(v uint64) (Level, bool) {
	if v >= uint64(levelCount) {
		return LevelInfo, false
	}
	return Level(v), true
}
