package xlogconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForCallback 等待回调触发，超时报错。
func waitForCallback(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("等待配置重载回调超时")
		return nil
	}
}

// TestWatchReload 测试文件变更触发重载
func TestWatchReload(t *testing.T) {
	path := writeTempConfig(t, "log.yaml", "log_level: 1\n")
	cfg, err := New(path)
	require.NoError(t, err)

	done := make(chan error, 4)
	w, err := cfg.Watch(func(_ *Config, err error) {
		done <- err
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	w.StartAsync()
	// 给监视循环一点启动时间，避免写入早于事件订阅
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("log_level: 3\n"), 0o600))
	require.NoError(t, waitForCallback(t, done))

	v, ok := cfg.Uint("log_level")
	assert.True(t, ok)
	assert.Equal(t, uint64(3), v)
}

// TestWatchReloadFailure 测试重载失败通过回调报告且保留旧数据
func TestWatchReloadFailure(t *testing.T) {
	path := writeTempConfig(t, "log.json", `{"log_level": 2}`)
	cfg, err := New(path)
	require.NoError(t, err)

	done := make(chan error, 4)
	w, err := cfg.Watch(func(_ *Config, err error) {
		done <- err
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	w.StartAsync()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))
	require.ErrorIs(t, waitForCallback(t, done), ErrParseFailed)

	v, ok := cfg.Uint("log_level")
	assert.True(t, ok)
	assert.Equal(t, uint64(2), v)
}

// TestWatchIgnoresOtherFiles 测试同目录其他文件的变更不触发回调
func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: 1\n"), 0o600))

	cfg, err := New(path)
	require.NoError(t, err)

	done := make(chan error, 4)
	w, err := cfg.Watch(func(_ *Config, err error) {
		done <- err
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	w.StartAsync()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o600))

	select {
	case <-done:
		t.Fatal("其他文件的变更不应触发回调")
	case <-time.After(300 * time.Millisecond):
	}
}

// TestWatchNotWatchable 测试不可监视的配置来源
func TestWatchNotWatchable(t *testing.T) {
	cfg, err := NewFromBytes([]byte("a: 1"), FormatYAML)
	require.NoError(t, err)

	_, err = cfg.Watch(func(_ *Config, _ error) {})
	require.ErrorIs(t, err, ErrNotWatchable)
}

// TestWatcherStopIdempotent 测试 Stop 幂等且未启动也可 Stop
func TestWatcherStopIdempotent(t *testing.T) {
	path := writeTempConfig(t, "log.yaml", "a: 1\n")
	cfg, err := New(path)
	require.NoError(t, err)

	w, err := cfg.Watch(func(_ *Config, _ error) {})
	require.NoError(t, err)

	w.StartAsync()
	w.StartAsync() // 重复启动无副作用

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
