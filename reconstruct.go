package relkit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/relkit/relkit/internal/fileops"
)

// ReconstructResult reports a completed reconstruction.
type ReconstructResult struct {
	// Archive is the path of the reassembled archive.
	Archive string
	// Parts lists the consumed part files in concatenation order. They are
	// left on disk; deletion is the operator's call.
	Parts []string
	// Size is the reassembled archive size in bytes.
	Size int64
	// Verified is true when a format integrity check ran and passed. False
	// means no checker was available for the format, not that the check
	// failed; a failed check is an error.
	Verified bool
}

// Reconstruct reassembles the archive archiveName from its part files in
// dir. It is the in-process twin of the emitted shell script: discover
// <archive>.part* on disk, sort lexicographically, concatenate, then run a
// format integrity check when one is available.
//
// The manifest is deliberately not consulted; the part files on disk are
// the single source of truth. Zero discovered parts is fatal. A failed
// integrity check is fatal and removes the output; an unavailable checker
// only logs a warning.
func Reconstruct(ctx context.Context, dir, archiveName string, opts ...ReconstructOption) (*ReconstructResult, error) {
	cfg := reconstructConfig{verify: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	parts, err := discoverParts(dir, archiveName)
	if err != nil {
		return nil, err
	}
	cfg.log().Info("reconstructing archive", "archive", archiveName, "parts", len(parts))

	outPath := filepath.Join(dir, archiveName)
	size, err := concatenateParts(ctx, outPath, dir, parts)
	if err != nil {
		os.Remove(outPath)
		return nil, fmt.Errorf("reconstruct %s: %w", archiveName, err)
	}

	res := &ReconstructResult{Archive: outPath, Parts: parts, Size: size}
	if cfg.verify {
		verified, err := checkIntegrity(ctx, outPath, DetectCompression(archiveName), cfg.log())
		if err != nil {
			os.Remove(outPath)
			return nil, fmt.Errorf("reconstruct %s: %w: %w", archiveName, ErrIntegrity, err)
		}
		res.Verified = verified
	}

	cfg.log().Info("reconstruction complete",
		"archive", outPath, "size", size, "verified", res.Verified,
		"extract", "tar -xf "+outPath,
		"cleanup", fmt.Sprintf("rm -f %s.part*", outPath))
	return res, nil
}

// discoverParts globs <archive>.part* in dir and returns the names sorted
// lexicographically. The suffix scheme guarantees that order equals
// sequence order.
func discoverParts(dir, archiveName string) ([]string, error) {
	pattern := filepath.Join(dir, archiveName+".part*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("reconstruct %s: glob %s: %w", archiveName, pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("reconstruct %s: %w: nothing matches %s", archiveName, ErrNoParts, pattern)
	}
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = filepath.Base(m)
	}
	sort.Strings(parts)
	return parts, nil
}

// concatenateParts streams the sorted parts into a single output file.
func concatenateParts(ctx context.Context, outPath, dir string, parts []string) (int64, error) {
	out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}

	buf := make([]byte, fileops.CopyBufSize)
	var total int64
	for _, part := range parts {
		in, err := os.Open(filepath.Join(dir, part))
		if err != nil {
			out.Close()
			return total, fmt.Errorf("open part %s: %w", part, err)
		}
		n, err := fileops.CopyWithContext(ctx, out, in, buf)
		in.Close()
		total += n
		if err != nil {
			out.Close()
			return total, fmt.Errorf("append part %s: %w", part, err)
		}
	}
	if err := out.Close(); err != nil {
		return total, fmt.Errorf("close output: %w", err)
	}
	return total, nil
}

// checkIntegrity runs a format self-test on the reconstructed archive.
// zstd and gzip streams are verified in process; xz is delegated to the xz
// binary when present. Returns (false, nil) when no checker is available.
func checkIntegrity(ctx context.Context, path string, comp Compression, logger *slog.Logger) (bool, error) {
	switch comp {
	case CompressionZstd:
		return true, drainStream(path, func(r io.Reader) (io.Reader, func(), error) {
			dec, err := zstd.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return dec.IOReadCloser(), dec.Close, nil
		})
	case CompressionGzip:
		return true, drainStream(path, func(r io.Reader) (io.Reader, func(), error) {
			dec, err := gzip.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return dec, func() { dec.Close() }, nil
		})
	case CompressionXz:
		xzBin, err := exec.LookPath("xz")
		if err != nil {
			logger.Warn("xz not found, skipping integrity check", "archive", path)
			return false, nil
		}
		if out, err := exec.CommandContext(ctx, xzBin, "-t", "--", path).CombinedOutput(); err != nil {
			return false, fmt.Errorf("xz -t: %v: %s", err, out)
		}
		return true, nil
	default:
		logger.Warn("no integrity checker for format, skipping", "archive", path)
		return false, nil
	}
}

// drainStream decodes the whole file through the supplied decoder to
// surface stream corruption.
func drainStream(path string, open func(io.Reader) (io.Reader, func(), error)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, release, err := open(f)
	if err != nil {
		return err
	}
	defer release()

	_, err = io.Copy(io.Discard, dec)
	return err
}

type reconstructConfig struct {
	logger *slog.Logger
	verify bool
}

func (c *reconstructConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.logger
}
