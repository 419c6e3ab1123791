package sink

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/AntonStoeckl/detached-state-go/optional"
)

var (
	// ErrInvalidArgument is the kind of every precondition violation in this package.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValueMustBePresent is returned by Put when given an absent value.
	ErrValueMustBePresent = fmt.Errorf("%w: value must be present", ErrInvalidArgument)
)

// OptionalSink is a write target with two insertion operations distinguished by null-policy.
type OptionalSink[T any] interface {
	// Put stores value. An absent value violates the precondition and yields ErrValueMustBePresent.
	Put(value T) error

	// PutIfPresent stores the held value if there is one, and is a no-op otherwise.
	PutIfPresent(value optional.Value[T])
}

// Holder holds at most one value of type T. The zero value is an empty Holder.
type Holder[T any] struct {
	value optional.Value[T]
}

var _ OptionalSink[any] = (*Holder[any])(nil)

// NewHolder returns a Holder that already holds initial.
func NewHolder[T any](initial T) (*Holder[T], error) {
	h := &Holder[T]{}
	if err := h.Put(initial); err != nil {
		return nil, err
	}

	return h, nil
}

// Put replaces the held value.
func (h *Holder[T]) Put(value T) error {
	if IsAbsent(value) {
		return ErrValueMustBePresent
	}

	h.value = optional.Some(value)

	return nil
}

// PutIfPresent replaces the held value only if value is present and not nil.
func (h *Holder[T]) PutIfPresent(value optional.Value[T]) {
	v, ok := value.Get()
	if !ok || IsAbsent(v) {
		return
	}

	h.value = optional.Some(v)
}

// Get returns the held value and true, or the zero value and false if nothing was stored yet.
func (h *Holder[T]) Get() (T, bool) {
	return h.value.Get()
}

// Value returns the held value as an optional.Value.
func (h *Holder[T]) Value() optional.Value[T] {
	return h.value
}

// IsAbsent reports whether v is nil of a nil-able kind (pointer, interface, map, slice, chan, func).
// Values of other kinds are never absent, including their zero values.
// A non-nil interface wrapping a nil pointer counts as absent.
func IsAbsent[T any](v T) bool {
	rv := reflect.ValueOf(&v).Elem()
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
