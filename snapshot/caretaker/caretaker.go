package caretaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/detached-state-go/sink"
	"github.com/AntonStoeckl/detached-state-go/snapshot"
)

var (
	// ErrNilSnapshotStore is returned when New is called without a store.
	ErrNilSnapshotStore = errors.New("snapshot store must not be nil")

	// ErrNilRegistry is returned when New is called without a registry.
	ErrNilRegistry = errors.New("snapshot registry must not be nil")

	// ErrNilSnapshotable is returned when an operation is called without a component, including a typed nil pointer.
	ErrNilSnapshotable = errors.New("snapshotable component must not be nil")

	// ErrNoCheckpoint is returned when a rollback finds no checkpoint to restore from.
	ErrNoCheckpoint = errors.New("no checkpoint found")

	// ErrCheckpointFailed is returned when capturing, encoding or saving a checkpoint fails.
	ErrCheckpointFailed = errors.New("checkpoint failed")

	// ErrRollbackFailed is returned when loading, decoding or restoring a checkpoint fails.
	ErrRollbackFailed = errors.New("rollback failed")

	// ErrForgetFailed is returned when deleting the checkpoints of an owner fails.
	ErrForgetFailed = errors.New("forget failed")
)

// SnapshotStore is the persistence contract the Caretaker relies on.
// postgresengine.SnapshotStore satisfies it.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, storable snapshot.StorableSnapshot) error
	LoadSnapshot(ctx context.Context, checkpointID uuid.UUID) (*snapshot.StorableSnapshot, error)
	LoadLatestSnapshot(ctx context.Context, ownerID string) (*snapshot.StorableSnapshot, error)
	ListSnapshots(ctx context.Context, ownerID string) (snapshot.StorableSnapshots, error)
	DeleteSnapshots(ctx context.Context, ownerID string) error
}

// Caretaker checkpoints Snapshotable components into a SnapshotStore and rolls them back.
// It never looks inside a snapshot; encoding and decoding go through the Registry.
type Caretaker struct {
	store            SnapshotStore
	registry         *snapshot.Registry
	verifyDetached   bool
	logger           snapshot.Logger
	metricsCollector snapshot.MetricsCollector
}

// New creates a Caretaker for the given store and registry.
func New(store SnapshotStore, registry *snapshot.Registry, options ...Option) (*Caretaker, error) {
	if store == nil {
		return nil, ErrNilSnapshotStore
	}

	if registry == nil {
		return nil, ErrNilRegistry
	}

	c := &Caretaker{
		store:    store,
		registry: registry,
	}

	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Checkpoint captures component, encodes the snapshot for ownerID and saves it.
// It returns the id of the new checkpoint.
func (c *Caretaker) Checkpoint(ctx context.Context, ownerID string, component snapshot.Snapshotable) (uuid.UUID, error) {
	start := time.Now()

	if sink.IsAbsent(component) {
		c.recordResult(operationCheckpoint, statusError, time.Since(start))
		return uuid.Nil, errors.Join(ErrCheckpointFailed, ErrNilSnapshotable)
	}

	captured := component.Capture()

	if c.verifyDetached {
		if err := snapshot.VerifyDetached(captured, component); err != nil {
			c.logError(logMsgCheckpointFailed, err, logAttrOwnerID, ownerID)
			c.recordResult(operationCheckpoint, statusError, time.Since(start))

			return uuid.Nil, errors.Join(ErrCheckpointFailed, err)
		}
	}

	storable, err := c.registry.Encode(ownerID, captured)
	if err != nil {
		c.logError(logMsgCheckpointFailed, err, logAttrOwnerID, ownerID)
		c.recordResult(operationCheckpoint, statusError, time.Since(start))

		return uuid.Nil, errors.Join(ErrCheckpointFailed, err)
	}

	if err = c.store.SaveSnapshot(ctx, storable); err != nil {
		c.logError(logMsgCheckpointFailed, err, logAttrOwnerID, ownerID)
		c.recordResult(operationCheckpoint, statusError, time.Since(start))

		return uuid.Nil, errors.Join(ErrCheckpointFailed, err)
	}

	c.logOperation(
		logMsgCheckpointTaken,
		logAttrOwnerID, ownerID,
		logAttrCheckpointID, storable.CheckpointID.String(),
		logAttrSnapshotType, storable.SnapshotType,
	)
	c.recordResult(operationCheckpoint, statusSuccess, time.Since(start))

	return storable.CheckpointID, nil
}

// RollbackToLatest restores component from the most recent checkpoint of ownerID.
func (c *Caretaker) RollbackToLatest(ctx context.Context, ownerID string, component snapshot.Snapshotable) error {
	return c.rollback(ctx, operationRollbackLatest, component, func() (*snapshot.StorableSnapshot, error) {
		return c.store.LoadLatestSnapshot(ctx, ownerID)
	})
}

// RollbackTo restores component from the checkpoint with the given id.
func (c *Caretaker) RollbackTo(ctx context.Context, checkpointID uuid.UUID, component snapshot.Snapshotable) error {
	return c.rollback(ctx, operationRollbackTo, component, func() (*snapshot.StorableSnapshot, error) {
		return c.store.LoadSnapshot(ctx, checkpointID)
	})
}

// History lists the checkpoints of ownerID, oldest first.
func (c *Caretaker) History(ctx context.Context, ownerID string) (snapshot.StorableSnapshots, error) {
	storables, err := c.store.ListSnapshots(ctx, ownerID)
	if err != nil {
		c.logError(logMsgHistoryFailed, err, logAttrOwnerID, ownerID)
		return nil, err
	}

	return storables, nil
}

// Forget deletes all checkpoints of ownerID. Forgetting an owner without checkpoints is not an error.
func (c *Caretaker) Forget(ctx context.Context, ownerID string) error {
	start := time.Now()

	if err := c.store.DeleteSnapshots(ctx, ownerID); err != nil {
		c.logError(logMsgForgetFailed, err, logAttrOwnerID, ownerID)
		c.recordResult(operationForget, statusError, time.Since(start))

		return errors.Join(ErrForgetFailed, err)
	}

	c.logOperation(logMsgCheckpointsForgotten, logAttrOwnerID, ownerID)
	c.recordResult(operationForget, statusSuccess, time.Since(start))

	return nil
}

func (c *Caretaker) rollback(
	ctx context.Context,
	operation string,
	component snapshot.Snapshotable,
	load func() (*snapshot.StorableSnapshot, error),
) error {
	start := time.Now()

	if sink.IsAbsent(component) {
		c.recordResult(operation, statusError, time.Since(start))
		return errors.Join(ErrRollbackFailed, ErrNilSnapshotable)
	}

	storable, err := load()
	if err != nil {
		c.logError(logMsgRollbackFailed, err)
		c.recordResult(operation, statusError, time.Since(start))

		return errors.Join(ErrRollbackFailed, err)
	}

	if storable == nil {
		c.recordResult(operation, statusNotFound, time.Since(start))
		return errors.Join(ErrRollbackFailed, ErrNoCheckpoint)
	}

	decoded, err := c.registry.Decode(*storable)
	if err != nil {
		c.logError(logMsgRollbackFailed, err, logAttrCheckpointID, storable.CheckpointID.String())
		c.recordResult(operation, statusError, time.Since(start))

		return errors.Join(ErrRollbackFailed, err)
	}

	if err = component.Restore(decoded); err != nil {
		c.logError(
			logMsgRollbackFailed, err,
			logAttrCheckpointID, storable.CheckpointID.String(),
			logAttrSnapshotType, storable.SnapshotType,
		)
		c.recordResult(operation, statusError, time.Since(start))

		return errors.Join(ErrRollbackFailed, fmt.Errorf("checkpoint %s: %w", storable.CheckpointID, err))
	}

	c.logOperation(
		logMsgRolledBack,
		logAttrOwnerID, storable.OwnerID,
		logAttrCheckpointID, storable.CheckpointID.String(),
		logAttrSnapshotType, storable.SnapshotType,
	)
	c.recordResult(operation, statusSuccess, time.Since(start))

	return nil
}
