package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containsNullByte 检测路径是否包含空字节。
// 内核在 VFS 层会在空字节处截断路径，导致 Go 代码与操作系统看到的路径不一致。
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// hasDotDotSegment 检测路径中是否包含 ".." 作为独立路径段。
// 不能用 strings.Contains(path, "..")：会误伤合法文件名（如 "app..2024.log"）。
func hasDotDotSegment(path string) bool {
	for _, seg := range strings.Split(path, string(filepath.Separator)) {
		if seg == ".." {
			return true
		}
	}
	return false
}

// SanitizePath 对日志文件路径做格式净化与规范化。
//
// 检查项：
//   - 拒绝空路径与含空字节的路径
//   - 拒绝以分隔符结尾的路径（表示目录而非文件）
//   - 规范化后拒绝包含 ".." 独立路径段的相对穿越
//
// 绝对路径中的 ".." 会被 filepath.Clean 正常解析（"/var/log/../etc" 是
// 合法的绝对路径，不是穿越）。返回规范化后的路径。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if containsNullByte(filename) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}

	// 必须在 Clean 之前检查：Clean 会移除尾部分隔符
	if strings.HasSuffix(filename, "/") {
		return "", fmt.Errorf("path is a directory: %w", ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path traversal in filename: %w", ErrPathTraversal)
	}

	if base := filepath.Base(cleaned); base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name specified: %w", ErrInvalidPath)
	}

	return cleaned, nil
}
