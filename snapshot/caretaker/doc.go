// Package caretaker keeps checkpoints of Snapshotable components in a snapshot store.
//
// A Caretaker only moves snapshots around: the component captures and restores itself, the
// snapshot.Registry encodes and decodes, the store persists. Restore failures are returned joined
// with ErrRollbackFailed, so errors.Is still matches snapshot.ErrTypeMismatch and
// snapshot.ErrIncompleteSnapshot.
package caretaker
