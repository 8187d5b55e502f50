package sizeprobe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 1234), 0o644))

	size, err := Size(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), size)
}

func TestSizeZeroByteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	// Zero is a valid size for an existing file.
	size, err := Size(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)
}

func TestSizeMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Size(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestSizeDirectory(t *testing.T) {
	t.Parallel()

	_, err := Size(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknown, "a directory has no meaningful archive size")
}
