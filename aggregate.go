package relkit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/relkit/relkit/internal/fileops"
)

// PublishedFile is one file placed in a platform's output subdirectory.
type PublishedFile struct {
	Name string
	Size int64
	Type FileType
}

// PublishedPlatform collects everything published for one platform.
type PublishedPlatform struct {
	Key         string
	DisplayName string
	Platform    ocispec.Platform
	Files       []PublishedFile
}

// PublishedAlias records a created legacy alias symlink.
type PublishedAlias struct {
	// Name is the alias file name at the output root.
	Name string
	// Target is the slash-relative symlink target inside the tree.
	Target string
}

// AggregateResult reports a completed aggregation run.
type AggregateResult struct {
	// Platforms lists platforms that published at least one file, sorted by
	// key. Platforms with nothing to publish are omitted, not errors.
	Platforms []PublishedPlatform
	// Aliases lists the legacy aliases that were created.
	Aliases []PublishedAlias
	// IndexPath is the rendered distribution index.
	IndexPath string
}

// Aggregate collects per-platform artifacts into a normalized output tree
// under outRoot and renders the distribution index.
//
// Platforms are processed independently: a missing or unrecognizable
// producer directory skips that platform with a log line, and a platform
// whose publish fails never aborts the others. Per-platform failures are
// joined into the returned error after the full run; the result describes
// what did publish, and the index covers it. A whole archive is normalized
// to its canonical name <tool>-<key>-latest<ext>; a split set is copied
// unchanged. The output tree is regenerated from scratch on every run, so
// two runs over the same input produce byte-identical trees.
func Aggregate(ctx context.Context, cfg *AggregateConfig, outRoot string, opts ...AggregateOption) (*AggregateResult, error) {
	acfg := aggregateConfig{}
	for _, opt := range opts {
		opt(&acfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create output root %s: %w", outRoot, err)
	}

	platforms := append([]PlatformConfig(nil), cfg.Platforms...)
	sort.Slice(platforms, func(i, j int) bool { return platforms[i].Key < platforms[j].Key })

	res := &AggregateResult{}
	var failures []error
	for _, p := range platforms {
		published, err := publishPlatform(ctx, cfg.Tool, p, outRoot, acfg.log())
		if err != nil {
			// One broken platform must not hold up the rest of the release.
			acfg.log().Error("platform publish failed, continuing", "platform", p.Key, "error", err)
			failures = append(failures, fmt.Errorf("aggregate %s: %w", p.Key, err))
			continue
		}
		if published != nil {
			res.Platforms = append(res.Platforms, *published)
		}
	}

	aliases, err := publishAliases(cfg, outRoot, res.Platforms, acfg.log())
	if err != nil {
		return nil, err
	}
	res.Aliases = aliases

	indexPath := filepath.Join(outRoot, "index.md")
	if err := writeIndex(indexPath, cfg.Tool, res.Platforms, res.Aliases); err != nil {
		return nil, err
	}
	res.IndexPath = indexPath
	acfg.log().Info("aggregation complete", "platforms", len(res.Platforms), "aliases", len(res.Aliases), "failed", len(failures), "index", indexPath)
	return res, errors.Join(failures...)
}

// publishPlatform classifies one producer directory and copies its files
// into the platform's output subdirectory. Returns nil when the platform
// has nothing to publish.
func publishPlatform(ctx context.Context, tool string, p PlatformConfig, outRoot string, logger *slog.Logger) (*PublishedPlatform, error) {
	set, err := ClassifyDir(p.Dir)
	if err != nil {
		return nil, err
	}
	if set.Kind == ArtifactAbsent {
		// A dir that exists but holds nothing recognizable deserves a louder
		// log line than a platform that was simply never built.
		if _, statErr := os.Stat(p.Dir); statErr == nil {
			logger.Warn("no recognized artifact, skipping platform", "platform", p.Key, "dir", p.Dir)
		} else {
			logger.Info("producer dir missing, skipping platform", "platform", p.Key, "dir", p.Dir)
		}
		return nil, nil
	}

	outDir := filepath.Join(outRoot, p.Key)
	published := &PublishedPlatform{
		Key:         p.Key,
		DisplayName: p.DisplayName,
		Platform:    p.OCIPlatform(),
	}

	switch set.Kind {
	case ArtifactWhole:
		// Normalize the archive to its canonical published name.
		name := CanonicalArchiveName(tool, p.Key, ArchiveExt(set.Whole))
		size, err := fileops.CopyFile(ctx, filepath.Join(outDir, name), filepath.Join(p.Dir, set.Whole))
		if err != nil {
			return nil, err
		}
		published.Files = append(published.Files, PublishedFile{Name: name, Size: size, Type: FileTypeArchive})
		logger.Info("published whole archive", "platform", p.Key, "file", name, "size", size)

	case ArtifactSplit:
		// Split sets travel unchanged: renaming parts would break the
		// script's discovery convention.
		for _, name := range set.Files() {
			size, err := fileops.CopyFile(ctx, filepath.Join(outDir, name), filepath.Join(p.Dir, name))
			if err != nil {
				return nil, err
			}
			published.Files = append(published.Files, PublishedFile{Name: name, Size: size, Type: ClassifyFile(name)})
		}
		logger.Info("published split set", "platform", p.Key, "files", len(published.Files))
	}

	return published, nil
}

// publishAliases creates the legacy alias symlinks. An alias is created
// only when its canonical target platform published a whole archive;
// otherwise it is skipped with a log line.
func publishAliases(cfg *AggregateConfig, outRoot string, platforms []PublishedPlatform, logger *slog.Logger) ([]PublishedAlias, error) {
	var aliases []PublishedAlias
	for _, a := range cfg.Aliases {
		target := findWholeArchive(platforms, a.To)
		if target == "" {
			logger.Info("alias target has no whole archive, skipping alias", "from", a.From, "to", a.To)
			continue
		}
		name := CanonicalArchiveName(cfg.Tool, a.From, ArchiveExt(target))
		linkPath := filepath.Join(outRoot, name)
		linkTarget := filepath.Join(a.To, target)

		// Regenerated each run; a stale alias from a prior run is replaced.
		if err := os.Remove(linkPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("remove stale alias %s: %w", linkPath, err)
		}
		if err := os.Symlink(linkTarget, linkPath); err != nil {
			return nil, fmt.Errorf("create alias %s -> %s: %w", linkPath, linkTarget, err)
		}
		aliases = append(aliases, PublishedAlias{Name: name, Target: filepath.ToSlash(linkTarget)})
		logger.Info("created legacy alias", "alias", name, "target", linkTarget)
	}
	return aliases, nil
}

// findWholeArchive returns the whole-archive file name published for key,
// or "" when the platform published nothing or only a split set.
func findWholeArchive(platforms []PublishedPlatform, key string) string {
	for _, p := range platforms {
		if p.Key != key {
			continue
		}
		for _, f := range p.Files {
			if f.Type == FileTypeArchive {
				return f.Name
			}
		}
	}
	return ""
}

type aggregateConfig struct {
	logger *slog.Logger
}

func (c *aggregateConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.logger
}
