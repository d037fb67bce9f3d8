package xsink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSizeSinkWrite 测试基本写入
func TestSizeSinkWrite(t *testing.T) {
	dir := t.TempDir()
	s, err := New(KindSizeFile)
	require.NoError(t, err)
	s.Configure(MapSource{
		KeyFilePath:     dir,
		KeyFileBaseName: "app",
		KeyFileSuffix:   "log",
	})

	require.NoError(t, s.Open())
	require.NoError(t, s.Log("hello\n", LevelInfo))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

// TestSizeSinkClosedWrite 测试向已关闭的 Sink 写入
func TestSizeSinkClosedWrite(t *testing.T) {
	dir := t.TempDir()
	s, err := New(KindSizeFile)
	require.NoError(t, err)
	s.Configure(MapSource{KeyFilePath: dir})

	require.ErrorIs(t, s.Log("x\n", LevelInfo), ErrClosed)

	require.NoError(t, s.Open())
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "Close 幂等")
	require.ErrorIs(t, s.Log("x\n", LevelInfo), ErrClosed)
}

// TestSizeSinkConfigure 测试大小滚动参数合并
func TestSizeSinkConfigure(t *testing.T) {
	s := newSizeSink(defaultConfig())

	s.Configure(MapSource{
		KeyMaxSizeMB:  100,
		KeyMaxBackups: 3,
		KeyMaxAgeDays: 7,
		KeyCompress:   1,
	})

	assert.Equal(t, 100, s.maxSizeMB)
	assert.Equal(t, 3, s.maxBackups)
	assert.Equal(t, 7, s.maxAgeDays)
	assert.True(t, s.compress)
}

// TestSizeSinkConfigureZeroSize 测试 max_size_mb 为 0 时保持当前值
func TestSizeSinkConfigureZeroSize(t *testing.T) {
	s := newSizeSink(defaultConfig())
	s.Configure(MapSource{KeyMaxSizeMB: 0})
	assert.Equal(t, DefaultMaxSizeMB, s.maxSizeMB)
}

// TestSizeSinkFilter 测试级别过滤
func TestSizeSinkFilter(t *testing.T) {
	dir := t.TempDir()
	s, err := New(KindSizeFile)
	require.NoError(t, err)
	s.Configure(MapSource{KeyFilePath: dir, KeyLevel: 2}) // WARNING

	require.NoError(t, s.Open())
	require.NoError(t, s.Log("drop\n", LevelInfo))
	require.NoError(t, s.Log("keep\n", LevelWarning))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(filepath.Join(dir, "log"))
	require.NoError(t, err)
	assert.Equal(t, "keep\n", string(data))
}
