package fileops

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyWithContext(t *testing.T) {
	t.Parallel()

	src := bytes.Repeat([]byte("payload "), 1000)
	var dst bytes.Buffer

	n, err := CopyWithContext(context.Background(), &dst, bytes.NewReader(src), make([]byte, 64))
	require.NoError(t, err)
	assert.Equal(t, int64(len(src)), n)
	assert.Equal(t, src, dst.Bytes())
}

func TestCopyWithContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var dst bytes.Buffer
	_, err := CopyWithContext(ctx, &dst, bytes.NewReader([]byte("data")), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	require.NoError(t, os.WriteFile(src, []byte("contents"), 0o640))

	// Destination parent does not exist yet.
	dst := filepath.Join(dir, "nested", "dst.bin")
	n, err := CopyFile(context.Background(), dst, src)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("contents"), got)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestCopyFileMissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := CopyFile(context.Background(), filepath.Join(dir, "dst"), filepath.Join(dir, "absent"))
	require.Error(t, err)
}

func TestCopyFileOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("old old old"), 0o644))

	_, err := CopyFile(context.Background(), dst, src)
	require.NoError(t, err)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}
