package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = "[2025-09-17_19:31:00:123] 4,30,2078\n[2025-09-17_19:31:01:123] 5,31,2079\n"

func TestBuildFile_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acc.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0644))

	result, err := NewBuilder().BuildFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Parsed())
}

func TestBuildFile_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acc.txt.gz")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(sampleLog))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	result, err := NewBuilder().BuildFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Parsed())
}

func TestBuildFile_Zstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acc.txt.zst")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = zw.Write([]byte(sampleLog))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	result, err := NewBuilder().BuildFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Parsed())
}

func TestBuildFile_CorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acc.txt.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0644))

	_, err := NewBuilder().BuildFile(path)
	assert.Error(t, err)
}

func TestBuildFile_NotFound(t *testing.T) {
	_, err := NewBuilder().BuildFile("/nonexistent/acc.txt")
	assert.Error(t, err)
}
