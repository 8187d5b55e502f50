package relkit

import "log/slog"

// AggregateOption configures Aggregate.
type AggregateOption func(*aggregateConfig)

// AggregateWithLogger sets the logger for aggregation operations.
// If not set, logging is disabled.
func AggregateWithLogger(logger *slog.Logger) AggregateOption {
	return func(c *aggregateConfig) {
		c.logger = logger
	}
}
