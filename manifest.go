package relkit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/opencontainers/go-digest"
)

// ManifestSchemaVersion is the current manifest schema version. The field
// set of an existing version is a stable contract for any tooling that
// parses manifests; additions require a version bump.
const ManifestSchemaVersion = 1

// ManifestPart records one part's published name, size and content digest.
type ManifestPart struct {
	Name   string        `json:"name"`
	Size   int64         `json:"size"`
	Digest digest.Digest `json:"digest,omitempty"`
}

// Manifest describes a split archive. It is advisory documentation for
// humans and tooling: reconstruction re-discovers parts from disk and
// never consults the manifest.
type Manifest struct {
	SchemaVersion int            `json:"schema_version"`
	Archive       string         `json:"archive"`
	Version       string         `json:"version,omitempty"`
	Created       time.Time      `json:"created"`
	Compression   string         `json:"compression"`
	SplitCap      int64          `json:"split_cap"`
	PartCount     int            `json:"part_count"`
	TotalSize     int64          `json:"total_size"`
	Parts         []ManifestPart `json:"parts"`
	// Instructions documents the reconstruction procedure. It mirrors what
	// the emitted script does but is never parsed or executed.
	Instructions []string `json:"instructions"`
}

// ManifestName returns the manifest file name for an archive:
// <archive>-manifest.json.
func ManifestName(archiveName string) string {
	return archiveName + "-manifest.json"
}

// buildManifest assembles the manifest for a completed split.
func buildManifest(archiveName, version string, created time.Time, capBytes int64, parts []Part) *Manifest {
	mparts := make([]ManifestPart, len(parts))
	var total int64
	for i, p := range parts {
		mparts[i] = ManifestPart{Name: p.Name, Size: p.Size, Digest: p.Digest}
		total += p.Size
	}
	return &Manifest{
		SchemaVersion: ManifestSchemaVersion,
		Archive:       archiveName,
		Version:       version,
		Created:       created.UTC(),
		Compression:   DetectCompression(archiveName).String(),
		SplitCap:      capBytes,
		PartCount:     len(parts),
		TotalSize:     total,
		Parts:         mparts,
		Instructions: []string{
			fmt.Sprintf("Download every %s.part* file into one directory.", archiveName),
			fmt.Sprintf("Run: sh %s", ScriptName(archiveName)),
			fmt.Sprintf("Or manually: cat %s.part* > %s (parts concatenate in filename order).", archiveName, archiveName),
			fmt.Sprintf("Then extract: tar -xf %s", archiveName),
		},
	}
}

// WriteManifest writes m to dir as <archive>-manifest.json and returns the
// written path.
func WriteManifest(dir string, m *Manifest) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestName(m.Archive))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if m.SchemaVersion != ManifestSchemaVersion {
		return nil, fmt.Errorf("manifest %s declares schema version %d: %w", path, m.SchemaVersion, ErrManifestSchema)
	}
	return &m, nil
}
