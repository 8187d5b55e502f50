package relkit

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZstdArchive compresses size bytes of compressible content into a
// .tar.zst-named file and returns its path and the compressed bytes.
func writeZstdArchive(t *testing.T, dir, name string, size int) (string, []byte) {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	payload := make([]byte, size)
	for i := range payload {
		payload[i] = byte('a' + rng.Intn(4))
	}
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll(payload, nil)
	require.NoError(t, enc.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, compressed, 0o644))
	return path, compressed
}

func TestReconstructNoParts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := Reconstruct(context.Background(), dir, "sdk.bin")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoParts)
	assert.Contains(t, err.Error(), "sdk.bin.part*", "diagnostic must name the expected pattern")

	// No output archive may appear on the failure path.
	_, statErr := os.Stat(filepath.Join(dir, "sdk.bin"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestReconstructOrdersPartsLexicographically(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// Write parts out of creation order; discovery must sort them.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sdk.bin.partac"), []byte("3"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sdk.bin.partaa"), []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sdk.bin.partab"), []byte("2"), 0o644))

	res, err := Reconstruct(context.Background(), dir, "sdk.bin")
	require.NoError(t, err)
	assert.Equal(t, []string{"sdk.bin.partaa", "sdk.bin.partab", "sdk.bin.partac"}, res.Parts)

	got, err := os.ReadFile(res.Archive)
	require.NoError(t, err)
	assert.Equal(t, "123", string(got))
}

func TestReconstructLeavesPartsOnDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, _ := writeArchive(t, dir, "sdk.bin", 2500)
	_, err := Split(context.Background(), path, 1000)
	require.NoError(t, err)

	res, err := Reconstruct(context.Background(), dir, "sdk.bin")
	require.NoError(t, err)

	// Cleanup is the operator's call; every part must still exist.
	for _, p := range res.Parts {
		_, err := os.Stat(filepath.Join(dir, p))
		assert.NoError(t, err, "part %s must survive reconstruction", p)
	}
}

func TestReconstructZstdIntegrityPass(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, compressed := writeZstdArchive(t, dir, "sdk.tar.zst", 10_000)

	_, err := Split(context.Background(), path, 512)
	require.NoError(t, err)

	res, err := Reconstruct(context.Background(), dir, "sdk.tar.zst")
	require.NoError(t, err)
	assert.True(t, res.Verified, "zstd self-test should run and pass")

	got, err := os.ReadFile(res.Archive)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(compressed, got))
}

func TestReconstructZstdIntegrityFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, _ := writeZstdArchive(t, dir, "sdk.tar.zst", 10_000)

	res, err := Split(context.Background(), path, 512)
	require.NoError(t, err)
	require.True(t, res.Split)

	// Corrupt a middle part.
	victim := filepath.Join(dir, res.Parts[len(res.Parts)/2].Name)
	data, err := os.ReadFile(victim)
	require.NoError(t, err)
	for i := range data {
		data[i] ^= 0xff
	}
	require.NoError(t, os.WriteFile(victim, data, 0o644))

	_, err = Reconstruct(context.Background(), dir, "sdk.tar.zst")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIntegrity)

	// A corrupt reconstruction must not be left behind.
	_, statErr := os.Stat(filepath.Join(dir, "sdk.tar.zst"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestReconstructUnknownFormatSkipsCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sdk.bin.partaa"), []byte("data"), 0o644))

	res, err := Reconstruct(context.Background(), dir, "sdk.bin")
	require.NoError(t, err)
	assert.False(t, res.Verified, "no checker for unknown formats")
}

func TestReconstructVerifyDisabled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// Garbage with a zstd name would fail the check; disabling skips it.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sdk.tar.zst.partaa"), []byte("not zstd"), 0o644))

	res, err := Reconstruct(context.Background(), dir, "sdk.tar.zst", ReconstructWithVerify(false))
	require.NoError(t, err)
	assert.False(t, res.Verified)
}
