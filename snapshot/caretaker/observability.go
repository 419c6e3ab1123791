package caretaker

import (
	"time"
)

const (
	logMsgCheckpointTaken      = "checkpoint taken"
	logMsgCheckpointFailed     = "checkpoint failed"
	logMsgRolledBack           = "rolled back to checkpoint"
	logMsgRollbackFailed       = "rollback failed"
	logMsgCheckpointsForgotten = "checkpoints forgotten"
	logMsgForgetFailed         = "forget failed"
	logMsgHistoryFailed        = "listing checkpoints failed"
	logAttrError               = "error"
	logAttrOwnerID             = "owner_id"
	logAttrCheckpointID        = "checkpoint_id"
	logAttrSnapshotType        = "snapshot_type"

	metricOperationDuration = "caretaker_operation_duration_seconds"
	metricOperationErrors   = "caretaker_operation_errors_total"
	operationCheckpoint     = "checkpoint"
	operationRollbackLatest = "rollback_latest"
	operationRollbackTo     = "rollback_to"
	operationForget         = "forget"
	statusSuccess           = "success"
	statusError             = "error"
	statusNotFound          = "not_found"
)

func (c *Caretaker) logOperation(message string, args ...any) {
	if c.logger != nil {
		c.logger.Info(message, args...)
	}
}

func (c *Caretaker) logError(message string, err error, args ...any) {
	if c.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		c.logger.Error(message, allArgs...)
	}
}

func (c *Caretaker) recordResult(operation, status string, duration time.Duration) {
	if c.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		"operation": operation,
		"status":    status,
	}

	c.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)

	if status == statusError {
		c.metricsCollector.IncrementCounter(metricOperationErrors, labels)
	}
}
