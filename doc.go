// Package relkit packages oversized release archives for distribution and
// aggregates per-platform artifacts into a browsable download tree.
//
// Hosting platforms commonly cap the size of a single release file. When a
// compressed SDK archive exceeds that cap, [Split] partitions it into
// bounded-size parts plus a JSON manifest and a standalone reconstruction
// script. Concatenating the parts in lexicographic filename order
// reproduces the original archive byte for byte; [Reconstruct] is the
// in-process implementation of the same procedure the emitted script
// performs.
//
// # Splitting
//
//	res, err := relkit.Split(ctx, "acme-sdk-linux-x64.tar.zst", relkit.DefaultSplitCap)
//	if err != nil {
//	    return err
//	}
//	if res.Split {
//	    // parts, manifest and reconstruction script now sit next to the source
//	}
//
// Splitting is deterministic: re-running on an identical archive produces
// bit-identical parts. An archive at or under the cap is left untouched.
//
// # Aggregation
//
// [Aggregate] collects heterogeneous per-platform outputs (a whole archive,
// or a split part set) into a normalized tree:
//
//	<root>/<platform>/<files...>
//	<root>/index.md
//
// plus an optional legacy alias symlink at the root for renamed platform
// keys. The platform table and alias mapping are plain configuration data,
// loaded from YAML via [LoadAggregateConfig]. Missing platforms are
// skipped, never fatal: the aggregator is designed for partial-availability
// runs.
//
// [PackAll] runs the whole pipeline: per-platform splitting in parallel,
// then a single aggregation pass.
package relkit
