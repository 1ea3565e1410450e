package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirExists(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "regular.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o644))

	assert.True(t, DirExists(tmpDir))
	assert.False(t, DirExists(filePath), "a regular file is not a directory")
	assert.False(t, DirExists(filepath.Join(tmpDir, "missing")))
}

func TestFileSize(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "partial.zip")
	require.NoError(t, os.WriteFile(filePath, []byte("12345"), 0o644))

	size, err := FileSize(filePath)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	size, err = FileSize(filepath.Join(tmpDir, "missing.zip"))
	require.NoError(t, err, "a missing file is not an error, just empty")
	assert.Equal(t, int64(0), size)

	_, err = FileSize(tmpDir)
	require.Error(t, err, "directories have no file size")
}

func TestMoveDir(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "extracted")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "tool.jar"), []byte("jar"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "lib", "dep.jar"), []byte("dep"), 0o644))

	dst := filepath.Join(tmpDir, "final")
	require.NoError(t, MoveDir(src, dst))

	assert.False(t, DirExists(src), "source should be gone after the move")
	assert.True(t, DirExists(dst))
	content, err := os.ReadFile(filepath.Join(dst, "lib", "dep.jar"))
	require.NoError(t, err)
	assert.Equal(t, "dep", string(content))
}
