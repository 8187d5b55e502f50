package relkit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// InspectReport compares a split manifest against the part set on disk.
type InspectReport struct {
	Manifest *Manifest
	// PartsOnDisk and SizeOnDisk describe the actual part files found next
	// to the manifest.
	PartsOnDisk int
	SizeOnDisk  int64
	// Problems lists every disagreement found. Empty means the manifest and
	// the disk agree.
	Problems []string
}

// Consistent reports whether the manifest matches the parts on disk.
func (r *InspectReport) Consistent() bool {
	return len(r.Problems) == 0
}

// Inspect loads the manifest for archiveName in dir and cross-checks it
// against the part files actually present. With [InspectWithVerifyDigests]
// it additionally re-hashes every part and compares content digests.
//
// Inspect is diagnostic only: disagreements land in the report's Problems
// list rather than failing the call. Only a missing or malformed manifest
// is an error.
func Inspect(dir, archiveName string, opts ...InspectOption) (*InspectReport, error) {
	cfg := inspectConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	m, err := LoadManifest(filepath.Join(dir, ManifestName(archiveName)))
	if err != nil {
		return nil, err
	}

	onDisk := map[string]int64{}
	matches, err := filepath.Glob(filepath.Join(dir, archiveName+".part*"))
	if err != nil {
		return nil, fmt.Errorf("inspect %s: glob parts: %w", archiveName, err)
	}
	report := &InspectReport{Manifest: m}
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("inspect %s: %w", archiveName, err)
		}
		onDisk[filepath.Base(path)] = info.Size()
		report.PartsOnDisk++
		report.SizeOnDisk += info.Size()
	}

	if m.PartCount != report.PartsOnDisk {
		report.Problems = append(report.Problems,
			fmt.Sprintf("manifest declares %d parts, %d on disk", m.PartCount, report.PartsOnDisk))
	}
	if m.TotalSize != report.SizeOnDisk {
		report.Problems = append(report.Problems,
			fmt.Sprintf("manifest declares %d total bytes, %d on disk", m.TotalSize, report.SizeOnDisk))
	}
	for _, p := range m.Parts {
		size, ok := onDisk[p.Name]
		if !ok {
			report.Problems = append(report.Problems, fmt.Sprintf("part %s missing on disk", p.Name))
			continue
		}
		if size != p.Size {
			report.Problems = append(report.Problems,
				fmt.Sprintf("part %s is %d bytes, manifest says %d", p.Name, size, p.Size))
		}
		delete(onDisk, p.Name)
	}
	extra := make([]string, 0, len(onDisk))
	for name := range onDisk {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		report.Problems = append(report.Problems, fmt.Sprintf("part %s on disk but not in manifest", name))
	}

	if cfg.verifyDigests {
		if err := verifyPartDigests(dir, m, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// verifyPartDigests re-hashes each manifest part present on disk and
// records any digest mismatch.
func verifyPartDigests(dir string, m *Manifest, report *InspectReport) error {
	for _, p := range m.Parts {
		if p.Digest == "" {
			continue
		}
		f, err := os.Open(filepath.Join(dir, p.Name))
		if os.IsNotExist(err) {
			continue // already reported as missing
		}
		if err != nil {
			return fmt.Errorf("inspect %s: %w", m.Archive, err)
		}
		verifier := p.Digest.Verifier()
		_, err = io.Copy(verifier, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("inspect %s: hash part %s: %w", m.Archive, p.Name, err)
		}
		if !verifier.Verified() {
			report.Problems = append(report.Problems, fmt.Sprintf("part %s content digest mismatch", p.Name))
		}
	}
	return nil
}

type inspectConfig struct {
	verifyDigests bool
}

// InspectOption configures Inspect.
type InspectOption func(*inspectConfig)

// InspectWithVerifyDigests re-hashes every part and compares against the
// manifest digests. Reads every part in full; costs one pass over the data.
func InspectWithVerifyDigests(verify bool) InspectOption {
	return func(c *inspectConfig) {
		c.verifyDigests = verify
	}
}
