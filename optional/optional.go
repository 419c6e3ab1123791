package optional

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

var jsonNull = []byte("null")

// Value holds a value of type T that may be absent. The zero Value is absent.
type Value[T any] struct {
	value   T
	present bool
}

// Some returns a present Value holding v.
func Some[T any](v T) Value[T] {
	return Value[T]{value: v, present: true}
}

// None returns an absent Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Of returns a present Value holding v if ok is true, otherwise an absent Value.
// It fits the comma-ok idiom, e.g. optional.Of(os.LookupEnv("KEY")).
func Of[T any](v T, ok bool) Value[T] {
	if !ok {
		return None[T]()
	}

	return Some(v)
}

// FromPointer returns a present Value holding *p, or an absent Value if p is nil.
func FromPointer[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}

	return Some(*p)
}

// IsPresent reports whether the Value holds a value.
func (v Value[T]) IsPresent() bool {
	return v.present
}

// Get returns the held value and true, or the zero value of T and false if absent.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.present
}

// OrElse returns the held value, or fallback if absent.
func (v Value[T]) OrElse(fallback T) T {
	if !v.present {
		return fallback
	}

	return v.value
}

// MarshalJSON implements json.Marshaler.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.present {
		return jsonNull, nil
	}

	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*v = None[T]()
		return nil
	}

	var decoded T
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*v = Some(decoded)

	return nil
}
