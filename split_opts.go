package relkit

import (
	"log/slog"
	"time"
)

// SplitOption configures Split.
type SplitOption func(*splitConfig)

// SplitWithLogger sets the logger for split operations.
// If not set, logging is disabled.
func SplitWithLogger(logger *slog.Logger) SplitOption {
	return func(c *splitConfig) {
		c.logger = logger
	}
}

// SplitWithKeepOriginal keeps the source archive on disk after a successful
// split. By default the original is removed so the whole archive and its
// parts are never both treated as the canonical artifact.
func SplitWithKeepOriginal(keep bool) SplitOption {
	return func(c *splitConfig) {
		c.keepOriginal = keep
	}
}

// SplitWithVersion sets the version tag recorded in the emitted manifest.
func SplitWithVersion(version string) SplitOption {
	return func(c *splitConfig) {
		c.version = version
	}
}

// SplitWithTimestamp fixes the manifest creation timestamp. The timestamp
// is the only field that varies between runs on identical input; pinning it
// makes the full output reproducible.
func SplitWithTimestamp(t time.Time) SplitOption {
	return func(c *splitConfig) {
		c.now = func() time.Time { return t }
	}
}
