package relkit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// PackResult reports a completed pipeline run.
type PackResult struct {
	// Splits maps platform key to that platform's split outcome. Platforms
	// with no archive in their producer directory are absent from the map.
	Splits map[string]*SplitResult
	// Aggregate is the result of the final aggregation pass.
	Aggregate *AggregateResult
}

// PackAll runs the full packaging pipeline: for every platform in the
// table, split its archive if it exceeds capBytes, then aggregate all
// platforms into outRoot.
//
// Splitting fans out across platforms; each worker touches only its own
// producer directory, so no locking is involved. A platform without an
// archive is skipped at the split stage (the aggregator handles absence),
// but a failed split aborts the pipeline: a half-split platform must never
// reach publication. Aggregation failures stay scoped to their platform;
// the rest still publish, and the partial result is returned alongside the
// joined error.
func PackAll(ctx context.Context, cfg *AggregateConfig, capBytes int64, outRoot string, opts ...PackOption) (*PackResult, error) {
	pcfg := packConfig{}
	for _, opt := range opts {
		opt(&pcfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res := &PackResult{Splits: make(map[string]*SplitResult, len(cfg.Platforms))}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	if pcfg.workers > 0 {
		g.SetLimit(pcfg.workers)
	}
	for _, p := range cfg.Platforms {
		p := p
		g.Go(func() error {
			sr, err := splitPlatform(gctx, p, capBytes, &pcfg)
			if err != nil {
				return fmt.Errorf("platform %s: %w", p.Key, err)
			}
			if sr != nil {
				mu.Lock()
				res.Splits[p.Key] = sr
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg, err := Aggregate(ctx, cfg, outRoot, AggregateWithLogger(pcfg.logger))
	res.Aggregate = agg
	if err != nil {
		return res, err
	}
	return res, nil
}

// splitPlatform locates the platform's whole archive and splits it when
// oversized. Returns nil when the producer directory holds no whole
// archive (already split, or never built).
func splitPlatform(ctx context.Context, p PlatformConfig, capBytes int64, pcfg *packConfig) (*SplitResult, error) {
	set, err := ClassifyDir(p.Dir)
	if err != nil {
		return nil, err
	}
	if set.Kind != ArtifactWhole {
		pcfg.log().Debug("no whole archive to split", "platform", p.Key, "dir", p.Dir)
		return nil, nil
	}
	return Split(ctx, filepath.Join(p.Dir, set.Whole), capBytes,
		SplitWithLogger(pcfg.logger),
		SplitWithVersion(pcfg.version),
		SplitWithKeepOriginal(pcfg.keepOriginal),
	)
}

type packConfig struct {
	logger       *slog.Logger
	workers      int
	version      string
	keepOriginal bool
}

func (c *packConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.logger
}

// PackOption configures PackAll.
type PackOption func(*packConfig)

// PackWithLogger sets the logger for the whole pipeline.
// If not set, logging is disabled.
func PackWithLogger(logger *slog.Logger) PackOption {
	return func(c *packConfig) {
		c.logger = logger
	}
}

// PackWithWorkers caps the number of concurrent split workers.
// Zero or negative means no limit.
func PackWithWorkers(n int) PackOption {
	return func(c *packConfig) {
		c.workers = n
	}
}

// PackWithVersion sets the version tag recorded in emitted manifests.
func PackWithVersion(version string) PackOption {
	return func(c *packConfig) {
		c.version = version
	}
}

// PackWithKeepOriginal keeps source archives after splitting.
func PackWithKeepOriginal(keep bool) PackOption {
	return func(c *packConfig) {
		c.keepOriginal = keep
	}
}
