package postgresengine

import (
	"math"
	"time"
)

const (
	metricOperationDuration = "snapshotstore_operation_duration_seconds"
	metricOperationErrors   = "snapshotstore_operation_errors_total"
	metricLabelOperation    = "operation"
	metricLabelStatus       = "status"
	statusSuccess           = "success"
	statusError             = "error"
	statusNotFound          = "not_found"
)

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (s SnapshotStore) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (s SnapshotStore) logOperation(message string, args ...any) {
	if s.logger != nil {
		s.logger.Info(message, args...)
	}
}

func (s SnapshotStore) logWarn(message string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(message, args...)
	}
}

// logError logs error information at the error level if the logger is configured.
func (s SnapshotStore) logError(message string, err error, args ...any) {
	if s.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		s.logger.Error(message, allArgs...)
	}
}

// recordResult records the duration of an operation and, for failures, increments the error counter.
func (s SnapshotStore) recordResult(operation, status string, duration time.Duration) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		metricLabelOperation: operation,
		metricLabelStatus:    status,
	}

	s.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)

	if status == statusError {
		s.metricsCollector.IncrementCounter(metricOperationErrors, labels)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
