package xsink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// newTestFileSink 创建写入临时目录的文件 Sink（未打开）。
func newTestFileSink(t *testing.T, src MapSource) (Sink, string) {
	t.Helper()
	dir := t.TempDir()

	s, err := New(KindFile)
	require.NoError(t, err)

	merged := MapSource{KeyFilePath: dir}
	for k, v := range src {
		merged[k] = v
	}
	s.Configure(merged)
	return s, dir
}

// TestFileSinkWrite 测试消息按原样追加到派生路径的文件
func TestFileSinkWrite(t *testing.T) {
	s, dir := newTestFileSink(t, MapSource{
		KeyFileBaseName: "app",
		KeyFileSuffix:   "log",
	})
	require.NoError(t, s.Open())

	require.NoError(t, s.Log("line one\n", LevelInfo))
	require.NoError(t, s.Log("line two\n", LevelError))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(data))
}

// TestFileSinkDefaultBaseName 测试默认文件名（无后缀）
func TestFileSinkDefaultBaseName(t *testing.T) {
	s, dir := newTestFileSink(t, nil)
	require.NoError(t, s.Open())
	require.NoError(t, s.Log("x\n", LevelInfo))
	require.NoError(t, s.Close())

	_, err := os.Stat(filepath.Join(dir, "log"))
	require.NoError(t, err, "默认基础名 log、无后缀")
}

// TestFileSinkCreatesDirectory 测试目录不存在时逐级创建
func TestFileSinkCreatesDirectory(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")

	s, err := New(KindFile)
	require.NoError(t, err)
	s.Configure(MapSource{KeyFilePath: nested})

	require.NoError(t, s.Open())
	require.NoError(t, s.Log("deep\n", LevelInfo))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(filepath.Join(nested, "log"))
	require.NoError(t, err)
	assert.Equal(t, "deep\n", string(data))
}

// TestFileSinkAppendOnReopen 测试重新打开不截断既有内容
func TestFileSinkAppendOnReopen(t *testing.T) {
	s, dir := newTestFileSink(t, nil)

	require.NoError(t, s.Open())
	require.NoError(t, s.Log("first\n", LevelInfo))
	require.NoError(t, s.Close())

	require.NoError(t, s.Open())
	require.NoError(t, s.Log("second\n", LevelInfo))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(filepath.Join(dir, "log"))
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

// TestFileSinkClosedWrite 测试向已关闭的 Sink 写入
func TestFileSinkClosedWrite(t *testing.T) {
	s, _ := newTestFileSink(t, nil)

	// 从未打开
	require.ErrorIs(t, s.Log("x\n", LevelInfo), ErrClosed)

	require.NoError(t, s.Open())
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "Close 幂等")
	require.ErrorIs(t, s.Log("x\n", LevelInfo), ErrClosed)

	// 被过滤的消息不触碰底层句柄，关闭状态下也返回 nil
	require.NoError(t, s.Log("x\n", LevelDebug))
}

// TestFileSinkFlushThreshold 测试刷新阈值的可见性语义：
// 阈值未满时字节停留在缓冲区，外部读者看不到；第 N 条触发刷新。
func TestFileSinkFlushThreshold(t *testing.T) {
	s, dir := newTestFileSink(t, MapSource{KeyFlushEvery: 3})
	require.NoError(t, s.Open())
	path := filepath.Join(dir, "log")

	require.NoError(t, s.Log("1\n", LevelInfo))
	require.NoError(t, s.Log("2\n", LevelInfo))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, string(data), "阈值未满，字节应仍在缓冲区")

	require.NoError(t, s.Log("3\n", LevelInfo))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", string(data), "第 3 条写入应触发刷新")

	// Close 刷出未满阈值的残留
	require.NoError(t, s.Log("4\n", LevelInfo))
	require.NoError(t, s.Close())

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n4\n", string(data))
}

// TestFileSinkConcurrentWrites 测试并发写入不交错、不丢失
func TestFileSinkConcurrentWrites(t *testing.T) {
	const (
		goroutines = 8
		perWorker  = 50
	)

	s, dir := newTestFileSink(t, nil)
	require.NoError(t, s.Open())

	var g errgroup.Group
	for w := 0; w < goroutines; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				if err := s.Log(fmt.Sprintf("worker-%02d line-%03d\n", w, i), LevelInfo); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.NoError(t, s.Close())

	data, err := os.ReadFile(filepath.Join(dir, "log"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, goroutines*perWorker, "消息不应丢失")

	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		assert.Regexp(t, `^worker-\d{2} line-\d{3}$`, line, "消息不应交错")
		assert.False(t, seen[line], "消息不应重复: %s", line)
		seen[line] = true
	}
}

// TestFileSinkInvalidPath 测试非法路径在 Open 时报错
func TestFileSinkInvalidPath(t *testing.T) {
	tests := []struct {
		name string
		src  MapSource
	}{
		{"路径穿越", MapSource{KeyFilePath: t.TempDir(), KeyFileBaseName: "../escape"}},
		{"空路径", MapSource{KeyFilePath: "", KeyFileBaseName: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(KindFile)
			require.NoError(t, err)
			s.Configure(tt.src)
			require.Error(t, s.Open())
		})
	}
}

// TestFileSinkFileMode 测试文件以配置的权限创建
func TestFileSinkFileMode(t *testing.T) {
	dir := t.TempDir()
	s, err := New(KindFile, WithFileMode(0o640))
	require.NoError(t, err)
	s.Configure(MapSource{KeyFilePath: dir})

	require.NoError(t, s.Open())
	require.NoError(t, s.Close())

	info, err := os.Stat(filepath.Join(dir, "log"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}
