package relkit

import "log/slog"

// ReconstructOption configures Reconstruct.
type ReconstructOption func(*reconstructConfig)

// ReconstructWithLogger sets the logger for reconstruction operations.
// If not set, logging is disabled.
func ReconstructWithLogger(logger *slog.Logger) ReconstructOption {
	return func(c *reconstructConfig) {
		c.logger = logger
	}
}

// ReconstructWithVerify controls the post-concatenation integrity check.
// Enabled by default; disabling skips the check entirely.
func ReconstructWithVerify(verify bool) ReconstructOption {
	return func(c *reconstructConfig) {
		c.verify = verify
	}
}
