package caretaker

import (
	"github.com/AntonStoeckl/detached-state-go/snapshot"
)

// Option defines a functional option for configuring a Caretaker.
type Option func(*Caretaker) error

// WithLogger sets the logger for the Caretaker.
// Info level receives taken checkpoints, rollbacks and forgotten owners, Error level receives failures.
func WithLogger(logger snapshot.Logger) Option {
	return func(c *Caretaker) error {
		c.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Caretaker.
func WithMetrics(collector snapshot.MetricsCollector) Option {
	return func(c *Caretaker) error {
		c.metricsCollector = collector
		return nil
	}
}

// WithDetachmentCheck makes Checkpoint reject snapshots that still reference their component.
// The check walks the whole snapshot with reflection, so it is meant for development and tests.
func WithDetachmentCheck() Option {
	return func(c *Caretaker) error {
		c.verifyDetached = true
		return nil
	}
}
