package snapshot

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is returned by Restore when the given Snapshot is not the variant the component expects.
	ErrTypeMismatch = errors.New("snapshot type mismatch")

	// ErrIncompleteSnapshot is returned by Restore when required fields of the Snapshot are absent.
	ErrIncompleteSnapshot = errors.New("snapshot is incomplete")
)

// Snapshot is an immutable, detached value representing the state of one component at one instant.
//
// Implementations must be standalone value types (plain structs) that own their data outright:
// no pointer, slice or map may alias memory of the component that produced them.
type Snapshot interface {
	// SnapshotType names the variant, e.g. "ButtonState". It is used as the type key by Registry.
	SnapshotType() string
}

// Snapshotable is the capability of a component to produce and consume detached Snapshots.
type Snapshotable interface {
	// Capture returns a new Snapshot of the current state. It must not mutate the component.
	Capture() Snapshot

	// Restore replaces the whole state of the component with the data of s, or fails without changing anything.
	// It returns ErrTypeMismatch for a wrong variant and ErrIncompleteSnapshot for missing required data.
	Restore(s Snapshot) error
}

// As asserts that s is of the concrete snapshot type S.
// A nil Snapshot or one of another type yields ErrTypeMismatch.
func As[S Snapshot](s Snapshot) (S, error) {
	typed, ok := s.(S)
	if !ok {
		var want S

		return want, errors.Join(
			ErrTypeMismatch,
			fmt.Errorf("expected %T, got %T", want, s),
		)
	}

	return typed, nil
}
