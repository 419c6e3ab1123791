// Package snapshot provides the capture/restore contract for stateful components.
//
// A component that implements Snapshotable exposes its state as a Snapshot: an immutable,
// standalone value that holds copies of the component's data and no reference back to the
// component. Such a value can be kept, compared, serialized or sent across a process boundary
// without dragging the component along.
//
// Key types:
//   - Snapshot: a detached state value that names its variant
//   - Snapshotable: Capture and Restore
//   - StorableSnapshot: the scalar DTO handed to stores and transports
//   - Registry: encodes Snapshots to StorableSnapshots and decodes them back to their concrete type
//
// Restore surfaces specific errors so callers can tell the failure kinds apart:
//   - ErrTypeMismatch: the Snapshot is not the variant the component expects (see As)
//   - ErrIncompleteSnapshot: a required field is absent (see RequireFields)
//
// A Restore implementation validates the whole Snapshot first and only then replaces the state,
// so there are no partial updates.
//
// Common usage pattern:
//
//	type CounterState struct {
//		X optional.Value[int] `json:"x"`
//	}
//
//	func (CounterState) SnapshotType() string { return "CounterState" }
//
//	func (c *Counter) Capture() snapshot.Snapshot {
//		return CounterState{X: optional.Some(c.x)}
//	}
//
//	func (c *Counter) Restore(s snapshot.Snapshot) error {
//		state, err := snapshot.As[CounterState](s)
//		if err != nil {
//			return err
//		}
//
//		if err = snapshot.RequireFields(snapshot.Field("x", state.X)); err != nil {
//			return err
//		}
//
//		c.x, _ = state.X.Get()
//
//		return nil
//	}
//
// VerifyDetached checks by graph traversal that a Snapshot shares no memory with its owner.
package snapshot
