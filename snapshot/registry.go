package snapshot

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrUnknownSnapshotType is returned when encoding or decoding a snapshot type that was never registered.
	ErrUnknownSnapshotType = errors.New("unknown snapshot type")

	// ErrDuplicateSnapshotType is returned when a snapshot type is registered twice.
	ErrDuplicateSnapshotType = errors.New("snapshot type is already registered")

	// ErrSnapshotEncodingFailed is returned when a snapshot can not be serialized to JSON.
	ErrSnapshotEncodingFailed = errors.New("snapshot encoding failed")

	// ErrInvalidSnapshotType is returned when a pointer or interface type is registered.
	// Snapshot types are registered as plain value types.
	ErrInvalidSnapshotType = errors.New("snapshot type must be a value type")

	// ErrSnapshotDecodingFailed is returned when snapshot JSON can not be deserialized into its registered type.
	ErrSnapshotDecodingFailed = errors.New("snapshot decoding failed")
)

var codecJSON = jsoniter.ConfigCompatibleWithStandardLibrary

type decodeFunc func(data []byte) (Snapshot, error)

type registration struct {
	goType reflect.Type
	decode decodeFunc
}

// Registry maps snapshot type names to decoders, so that a StorableSnapshot that crossed a process
// boundary can be turned back into its concrete Snapshot type.
//
// The zero value is not usable, use NewRegistry. A Registry is safe for concurrent use.
type Registry struct {
	mu            sync.RWMutex
	registrations map[string]registration
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{registrations: make(map[string]registration)}
}

// RegisterType registers the concrete snapshot type S under the name its zero value reports via SnapshotType.
// S must be a value type, registering a pointer or interface type yields ErrInvalidSnapshotType.
func RegisterType[S Snapshot](r *Registry) error {
	goType := reflect.TypeOf((*S)(nil)).Elem()
	if kind := goType.Kind(); kind == reflect.Pointer || kind == reflect.Interface {
		return errors.Join(ErrInvalidSnapshotType, fmt.Errorf("type: %s", goType))
	}

	var zero S
	snapshotType := zero.SnapshotType()

	if snapshotType == "" {
		return ErrEmptySnapshotType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registrations[snapshotType]; exists {
		return errors.Join(ErrDuplicateSnapshotType, fmt.Errorf("type: %s", snapshotType))
	}

	r.registrations[snapshotType] = registration{
		goType: goType,
		decode: func(data []byte) (Snapshot, error) {
			var s S
			if err := codecJSON.Unmarshal(data, &s); err != nil {
				return nil, err
			}

			return s, nil
		},
	}

	return nil
}

// MustRegisterType is like RegisterType but panics on error. It is meant for package-level setup.
func MustRegisterType[S Snapshot](r *Registry) {
	if err := RegisterType[S](r); err != nil {
		panic(err)
	}
}

// Knows reports whether snapshotType was registered.
func (r *Registry) Knows(snapshotType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.registrations[snapshotType]

	return ok
}

func (r *Registry) lookup(snapshotType string) (registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.registrations[snapshotType]

	return reg, ok
}

// Encode serializes s into a StorableSnapshot for ownerID.
// The snapshot type must be registered, and s must be of the Go type it was registered with,
// so that the result decodes back into the same type.
func (r *Registry) Encode(ownerID string, s Snapshot) (StorableSnapshot, error) {
	if s == nil {
		return StorableSnapshot{}, errors.Join(ErrSnapshotEncodingFailed, ErrEmptySnapshotType)
	}

	reg, ok := r.lookup(s.SnapshotType())
	if !ok {
		return StorableSnapshot{}, errors.Join(ErrUnknownSnapshotType, fmt.Errorf("type: %s", s.SnapshotType()))
	}

	if goType := reflect.TypeOf(s); goType != reg.goType {
		return StorableSnapshot{}, errors.Join(
			ErrSnapshotEncodingFailed,
			ErrTypeMismatch,
			fmt.Errorf("%s is registered as %s, got %s", s.SnapshotType(), reg.goType, goType),
		)
	}

	data, err := codecJSON.Marshal(s)
	if err != nil {
		return StorableSnapshot{}, errors.Join(ErrSnapshotEncodingFailed, err)
	}

	return BuildStorableSnapshot(ownerID, s.SnapshotType(), data)
}

// Decode turns a StorableSnapshot back into the concrete Snapshot type registered for its SnapshotType.
func (r *Registry) Decode(storable StorableSnapshot) (Snapshot, error) {
	reg, ok := r.lookup(storable.SnapshotType)
	if !ok {
		return nil, errors.Join(ErrUnknownSnapshotType, fmt.Errorf("type: %s", storable.SnapshotType))
	}

	s, err := reg.decode(storable.DataJSON)
	if err != nil {
		return nil, errors.Join(ErrSnapshotDecodingFailed, err)
	}

	return s, nil
}
