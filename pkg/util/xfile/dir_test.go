package xfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDir 测试父目录逐级创建
func TestEnsureDir(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "a", "b", "c", "app.log")

	require.NoError(t, EnsureDir(file))

	info, err := os.Stat(filepath.Dir(file))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(DefaultDirPerm), info.Mode().Perm())
}

// TestEnsureDirExisting 测试目录已存在时不报错也不改权限
func TestEnsureDirExisting(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "logs")
	require.NoError(t, os.Mkdir(dir, 0o700))

	require.NoError(t, EnsureDir(filepath.Join(dir, "app.log")))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

// TestEnsureDirWithPerm 测试权限校验
func TestEnsureDirWithPerm(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "x", "app.log")

	t.Run("缺少所有者执行位", func(t *testing.T) {
		err := EnsureDirWithPerm(file, 0o600)
		require.ErrorIs(t, err, ErrInvalidPerm)
	})

	t.Run("合法权限", func(t *testing.T) {
		require.NoError(t, EnsureDirWithPerm(file, 0o700))
		info, err := os.Stat(filepath.Join(root, "x"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	})
}

// TestEnsureDirInvalidInput 测试非法输入
func TestEnsureDirInvalidInput(t *testing.T) {
	require.ErrorIs(t, EnsureDir(""), ErrEmptyPath)
	require.ErrorIs(t, EnsureDir("a\x00b/c"), ErrNullByte)
	require.NoError(t, EnsureDir("bare-name"), "无目录成分时为空操作")
}
