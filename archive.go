package relkit

import (
	"fmt"
	"strings"
)

// Compression identifies the compression format of an archive, detected
// from its filename. It selects the integrity checker used after
// reconstruction and the hint embedded in the emitted script.
type Compression uint8

const (
	// CompressionUnknown means the filename matched no known archive suffix.
	CompressionUnknown Compression = iota
	// CompressionZstd covers .zst and .tar.zst archives.
	CompressionZstd
	// CompressionXz covers .xz and .tar.xz archives.
	CompressionXz
	// CompressionGzip covers .gz, .tgz and .tar.gz archives.
	CompressionGzip
)

// String returns the short format name used in manifests.
func (c Compression) String() string {
	switch c {
	case CompressionZstd:
		return "zstd"
	case CompressionXz:
		return "xz"
	case CompressionGzip:
		return "gzip"
	default:
		return "unknown"
	}
}

// archiveSuffixes maps filename suffixes to compression formats. Longer
// suffixes are listed first so ArchiveExt returns the full chain.
var archiveSuffixes = []struct {
	ext  string
	comp Compression
}{
	{".tar.zst", CompressionZstd},
	{".tar.xz", CompressionXz},
	{".tar.gz", CompressionGzip},
	{".tgz", CompressionGzip},
	{".zst", CompressionZstd},
	{".xz", CompressionXz},
	{".gz", CompressionGzip},
}

// ArchiveExt returns the archive suffix chain of name (".tar.zst",
// ".tar.xz", ...) or "" when name is not a recognized archive.
func ArchiveExt(name string) string {
	for _, s := range archiveSuffixes {
		if strings.HasSuffix(name, s.ext) {
			return s.ext
		}
	}
	return ""
}

// DetectCompression returns the compression format implied by name's
// suffix, or CompressionUnknown.
func DetectCompression(name string) Compression {
	for _, s := range archiveSuffixes {
		if strings.HasSuffix(name, s.ext) {
			return s.comp
		}
	}
	return CompressionUnknown
}

// CanonicalArchiveName returns the normalized published name for a
// platform's whole archive: <tool>-<platform>-latest<ext>.
func CanonicalArchiveName(tool, platformKey, ext string) string {
	return fmt.Sprintf("%s-%s-latest%s", tool, platformKey, ext)
}
