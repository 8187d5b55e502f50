package relkit

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// FileType annotates a published file in the distribution index. It is
// derived purely from the filename suffix pattern.
type FileType uint8

const (
	// FileTypeUnknown means the name matched no recognized pattern.
	FileTypeUnknown FileType = iota
	// FileTypeArchive is a complete compressed archive.
	FileTypeArchive
	// FileTypePart is one split part of an archive.
	FileTypePart
	// FileTypeScript is a reconstruction script.
	FileTypeScript
	// FileTypeManifest is a split manifest.
	FileTypeManifest
)

// String returns the human-readable annotation used in the index.
func (t FileType) String() string {
	switch t {
	case FileTypeArchive:
		return "complete archive"
	case FileTypePart:
		return "split part"
	case FileTypeScript:
		return "reconstruction script"
	case FileTypeManifest:
		return "split manifest"
	default:
		return "unknown"
	}
}

// ClassifyFile determines a file's type from its name alone.
func ClassifyFile(name string) FileType {
	switch {
	case strings.Contains(name, "-manifest."):
		return FileTypeManifest
	case strings.Contains(name, "-reconstruct."):
		return FileTypeScript
	case isPartName(name):
		return FileTypePart
	case ArchiveExt(name) != "":
		return FileTypeArchive
	default:
		return FileTypeUnknown
	}
}

// isPartName reports whether name ends in the .part<suffix> convention:
// a ".part" marker followed by at least two lowercase letters.
func isPartName(name string) bool {
	i := strings.LastIndex(name, ".part")
	if i < 0 {
		return false
	}
	sfx := name[i+len(".part"):]
	if len(sfx) < 2 {
		return false
	}
	for _, r := range sfx {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// ArtifactKind discriminates the PlatformArtifactSet variant.
type ArtifactKind uint8

const (
	// ArtifactAbsent means the producer directory is missing or holds
	// nothing recognizable. Absence is not an error.
	ArtifactAbsent ArtifactKind = iota
	// ArtifactWhole means a single complete archive was found.
	ArtifactWhole
	// ArtifactSplit means a split part set (plus manifest and script when
	// present) was found.
	ArtifactSplit
)

// ArtifactSet is a one-time classification of a platform's producer
// directory. Downstream steps match on Kind instead of re-probing the
// filesystem.
type ArtifactSet struct {
	Kind ArtifactKind

	// Whole is the complete archive file name. Set only for ArtifactWhole.
	Whole string

	// Parts, Manifest and Script are set only for ArtifactSplit. Parts are
	// sorted lexicographically; Manifest and Script may be empty when the
	// producer omitted them.
	Parts    []string
	Manifest string
	Script   string
}

// Files returns every file in the set, in publication order.
func (s ArtifactSet) Files() []string {
	switch s.Kind {
	case ArtifactWhole:
		return []string{s.Whole}
	case ArtifactSplit:
		files := append([]string(nil), s.Parts...)
		if s.Script != "" {
			files = append(files, s.Script)
		}
		if s.Manifest != "" {
			files = append(files, s.Manifest)
		}
		return files
	default:
		return nil
	}
}

// ClassifyDir inspects a producer directory and classifies its contents.
//
// A missing directory classifies as absent. When both a whole archive and
// split parts are present, the whole archive wins: it is the simpler shape
// for consumers, and a complete archive makes the parts redundant. Multiple
// whole archives resolve to the lexicographically first for determinism.
func ClassifyDir(dir string) (ArtifactSet, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return ArtifactSet{}, nil
	}
	if err != nil {
		return ArtifactSet{}, fmt.Errorf("read producer dir %s: %w", dir, err)
	}

	var set ArtifactSet
	var wholes []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch ClassifyFile(name) {
		case FileTypeArchive:
			wholes = append(wholes, name)
		case FileTypePart:
			set.Parts = append(set.Parts, name)
		case FileTypeManifest:
			set.Manifest = name
		case FileTypeScript:
			set.Script = name
		}
	}

	if len(wholes) > 0 {
		sort.Strings(wholes)
		return ArtifactSet{Kind: ArtifactWhole, Whole: wholes[0]}, nil
	}
	if len(set.Parts) > 0 {
		sort.Strings(set.Parts)
		set.Kind = ArtifactSplit
		return set, nil
	}
	return ArtifactSet{}, nil
}
