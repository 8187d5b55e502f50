package relkit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/relkit/relkit/internal/fileops"
	"github.com/relkit/relkit/internal/sizeprobe"
	"github.com/relkit/relkit/internal/suffix"
)

// DefaultSplitCap is the default per-file size cap in bytes, chosen to stay
// under common release hosting limits with headroom.
const DefaultSplitCap = 1900 << 20

// Part describes one bounded-size slice of a split archive.
type Part struct {
	// Name is the part file name, <archive>.part<suffix>.
	Name string
	// Size is the part size in bytes, always in [1, cap].
	Size int64
	// Digest is the SHA-256 digest of the part contents.
	Digest digest.Digest
}

// SplitResult reports what Split produced.
type SplitResult struct {
	// Archive is the source archive path as given.
	Archive string
	// Split is false when the archive fit under the cap and was left alone.
	Split bool
	// Cap is the size cap the split was performed against.
	Cap int64
	// TotalSize is the original archive size in bytes.
	TotalSize int64
	// Parts lists the produced parts in sequence order. Empty when Split is
	// false.
	Parts []Part
	// ManifestPath and ScriptPath locate the emitted manifest and
	// reconstruction script. Empty when Split is false.
	ManifestPath string
	ScriptPath   string
}

// Split partitions the archive at path into parts of at most capBytes each
// when the archive exceeds the cap, and emits a manifest plus a standalone
// reconstruction script next to the parts. Archives at or under the cap are
// left untouched and the returned result has Split set to false.
//
// Every part except the last holds exactly capBytes; the last holds the
// remainder, never zero bytes. Part suffixes are fixed-width so that
// lexicographic filename order equals sequence order. Once all parts are
// written and their combined size verified against the original, the
// source archive is removed (see [SplitWithKeepOriginal]) so the whole
// archive and its parts are never both published.
//
// Split is all-or-nothing: on any failure the parts written so far are
// removed before the error is returned.
func Split(ctx context.Context, path string, capBytes int64, opts ...SplitOption) (*SplitResult, error) {
	cfg := splitConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	if capBytes <= 0 {
		return nil, fmt.Errorf("split %s: invalid size cap %d", path, capBytes)
	}

	size, err := sizeprobe.Size(path)
	if err != nil {
		return nil, fmt.Errorf("split %s: %w: %w", path, ErrSizeUnknown, err)
	}

	res := &SplitResult{Archive: path, Cap: capBytes, TotalSize: size}
	if size <= capBytes {
		cfg.log().Debug("archive under cap, not splitting", "archive", path, "size", size, "cap", capBytes)
		return res, nil
	}

	partCount := int((size + capBytes - 1) / capBytes)
	if partCount > suffix.Max {
		return nil, fmt.Errorf("split %s: %d parts needed: %w", path, partCount, ErrTooManyParts)
	}
	cfg.log().Info("splitting archive", "archive", path, "size", size, "cap", capBytes, "parts", partCount)

	parts, err := writeParts(ctx, path, size, capBytes, partCount)
	if err != nil {
		return nil, fmt.Errorf("split %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	name := filepath.Base(path)

	if err := verifyParts(dir, parts, size, capBytes); err != nil {
		removeParts(dir, parts)
		return nil, fmt.Errorf("split %s: %w", path, err)
	}

	m := buildManifest(name, cfg.version, cfg.now(), capBytes, parts)
	manifestPath, err := WriteManifest(dir, m)
	if err != nil {
		removeParts(dir, parts)
		return nil, fmt.Errorf("split %s: %w", path, err)
	}
	scriptPath, err := EmitScript(dir, name, DetectCompression(name))
	if err != nil {
		removeParts(dir, parts)
		os.Remove(manifestPath)
		return nil, fmt.Errorf("split %s: %w", path, err)
	}

	if !cfg.keepOriginal {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("split %s: remove original after split: %w", path, err)
		}
		cfg.log().Debug("removed original archive", "archive", path)
	}

	res.Split = true
	res.Parts = parts
	res.ManifestPath = manifestPath
	res.ScriptPath = scriptPath
	cfg.log().Info("split complete", "archive", path, "parts", len(parts))
	return res, nil
}

// writeParts streams the archive into part files. On error the parts
// written so far are removed.
func writeParts(ctx context.Context, path string, size, capBytes int64, partCount int) ([]Part, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer in.Close()

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	buf := make([]byte, fileops.CopyBufSize)
	parts := make([]Part, 0, partCount)

	remaining := size
	for i := 0; remaining > 0; i++ {
		sfx, err := suffix.Gen(i)
		if err != nil {
			removeParts(dir, parts)
			return nil, fmt.Errorf("%w: %w", ErrTooManyParts, err)
		}
		partName := fmt.Sprintf("%s.part%s", name, sfx)
		chunk := min(remaining, capBytes)

		written, dgst, err := writePart(ctx, filepath.Join(dir, partName), in, chunk, buf)
		if err != nil {
			removeParts(dir, parts)
			return nil, fmt.Errorf("write part %s: %w", partName, err)
		}
		parts = append(parts, Part{Name: partName, Size: written, Digest: dgst})
		remaining -= written
	}
	return parts, nil
}

// writePart copies exactly n bytes from src into a new file, returning the
// byte count and content digest. The partial file is removed on error.
func writePart(ctx context.Context, path string, src io.Reader, n int64, buf []byte) (int64, digest.Digest, error) {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, "", err
	}

	digester := digest.SHA256.Digester()
	written, err := fileops.CopyWithContext(ctx, io.MultiWriter(out, digester.Hash()), io.LimitReader(src, n), buf)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && written != n {
		err = fmt.Errorf("short read: %d of %d bytes", written, n)
	}
	if err != nil {
		os.Remove(path)
		return written, "", err
	}
	return written, digester.Digest(), nil
}

// verifyParts re-stats every part, checking the size sum matches the
// original and that no part exceeds the cap. The cap check should be
// structurally impossible to fail; it guards against environment surprises
// and is fatal when it fires.
func verifyParts(dir string, parts []Part, total, capBytes int64) error {
	var sum int64
	for _, p := range parts {
		size, err := sizeprobe.Size(filepath.Join(dir, p.Name))
		if err != nil {
			return fmt.Errorf("verify part %s: %w: %w", p.Name, ErrSizeUnknown, err)
		}
		if size != p.Size {
			return fmt.Errorf("verify part %s: %w: wrote %d bytes, found %d", p.Name, ErrPartMismatch, p.Size, size)
		}
		if size > capBytes {
			return fmt.Errorf("part %s is %d bytes, cap is %d: %w", p.Name, size, capBytes, ErrCapExceeded)
		}
		sum += size
	}
	if sum != total {
		return fmt.Errorf("%w: parts sum to %d bytes, archive is %d", ErrPartMismatch, sum, total)
	}
	return nil
}

// removeParts deletes part files, ignoring individual failures. Used on
// error paths so a partial part set never masquerades as complete.
func removeParts(dir string, parts []Part) {
	for _, p := range parts {
		os.Remove(filepath.Join(dir, p.Name))
	}
}

type splitConfig struct {
	logger       *slog.Logger
	keepOriginal bool
	version      string
	now          func() time.Time
}

func (c *splitConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.logger
}
