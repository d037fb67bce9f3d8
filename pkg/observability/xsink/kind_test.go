package xsink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKindString 测试目的地名称
func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindStderr, "stderr"},
		{KindFile, "file"},
		{KindRollingFile, "rolling-file"},
		{KindSizeFile, "size-file"},
		{Kind(9), "kind(9)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

// TestKindValid 测试目的地范围校验
func TestKindValid(t *testing.T) {
	assert.True(t, KindStderr.Valid())
	assert.True(t, KindSizeFile.Valid())
	assert.False(t, Kind(-1).Valid())
	assert.False(t, kindCount.Valid())
}

// TestKindFromUint 测试配置数值到目的地的转换
func TestKindFromUint(t *testing.T) {
	for v := uint64(0); v < uint64(kindCount); v++ {
		k, err := KindFromUint(v)
		require.NoError(t, err)
		assert.Equal(t, Kind(v), k)
	}

	_, err := KindFromUint(uint64(kindCount))
	require.ErrorIs(t, err, ErrUnknownKind)
}
