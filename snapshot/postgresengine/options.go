package postgresengine

import (
	"github.com/AntonStoeckl/detached-state-go/snapshot"
)

// Logger is the logging contract of the SnapshotStore. It is satisfied by *slog.Logger.
type Logger = snapshot.Logger

// MetricsCollector is the metrics contract of the SnapshotStore.
type MetricsCollector = snapshot.MetricsCollector

// Option defines a functional option for configuring SnapshotStore.
type Option func(*SnapshotStore) error

// WithTableName sets the table name for the SnapshotStore.
func WithTableName(tableName string) Option {
	return func(s *SnapshotStore) error {
		if tableName == "" {
			return ErrEmptySnapshotTableName
		}

		s.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the SnapshotStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: saved, loaded and deleted snapshots (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(s *SnapshotStore) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the SnapshotStore.
// The collector receives one duration per operation and a counter for every failed operation.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *SnapshotStore) error {
		s.metricsCollector = collector
		return nil
	}
}
