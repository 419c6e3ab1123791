package snapshot

import (
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrInvalidSnapshotJSON is returned when snapshot JSON data is malformed or invalid.
	ErrInvalidSnapshotJSON = errors.New("snapshot json is not valid")

	// ErrEmptySnapshotType is returned when an empty snapshot type is provided.
	ErrEmptySnapshotType = errors.New("snapshot type must not be empty")

	// ErrEmptyOwnerID is returned when an empty owner id is provided.
	ErrEmptyOwnerID = errors.New("owner id must not be empty")

	// ErrNilCheckpointID is returned when the nil UUID is provided as checkpoint id.
	ErrNilCheckpointID = errors.New("checkpoint id must not be the nil uuid")
)

// StorableSnapshots is an alias type for a slice of StorableSnapshot
type StorableSnapshots = []StorableSnapshot

// StorableSnapshot is a DTO (data transfer object) used by snapshot stores and transports.
//
// It is built on scalars to be completely agnostic of the Snapshot types in the client code.
// OwnerID is an opaque key chosen by the caller; it identifies the component, it is not a reference to it.
//
// While its properties are exported, it should only be constructed with BuildStorableSnapshot
// or Registry.Encode.
type StorableSnapshot struct {
	CheckpointID uuid.UUID
	OwnerID      string
	SnapshotType string
	DataJSON     []byte
	CapturedAt   time.Time
}

// Validate ensures the snapshot has valid data for storage operations.
func (s StorableSnapshot) Validate() error {
	if s.CheckpointID == uuid.Nil {
		return ErrNilCheckpointID
	}

	if s.OwnerID == "" {
		return ErrEmptyOwnerID
	}

	if s.SnapshotType == "" {
		return ErrEmptySnapshotType
	}

	if !jsoniter.ConfigFastest.Valid(s.DataJSON) {
		return ErrInvalidSnapshotJSON
	}

	return nil
}

// BuildStorableSnapshot is a factory method for StorableSnapshot.
//
// It assigns a fresh time-ordered CheckpointID and stamps CapturedAt with the current time.
// Returns an error if ownerID or snapshotType are empty or dataJSON is not valid JSON.
func BuildStorableSnapshot(ownerID string, snapshotType string, dataJSON []byte) (StorableSnapshot, error) {
	checkpointID, err := uuid.NewV7()
	if err != nil {
		return StorableSnapshot{}, err
	}

	return BuildStorableSnapshotWithID(checkpointID, ownerID, snapshotType, dataJSON, time.Now())
}

// BuildStorableSnapshotWithID is a factory method for StorableSnapshot with caller-supplied identity and time,
// as needed when rebuilding a StorableSnapshot from a database row or a wire message.
func BuildStorableSnapshotWithID(
	checkpointID uuid.UUID,
	ownerID string,
	snapshotType string,
	dataJSON []byte,
	capturedAt time.Time,
) (StorableSnapshot, error) {
	storable := StorableSnapshot{
		CheckpointID: checkpointID,
		OwnerID:      ownerID,
		SnapshotType: snapshotType,
		DataJSON:     dataJSON,
		CapturedAt:   capturedAt,
	}

	if err := storable.Validate(); err != nil {
		return StorableSnapshot{}, err
	}

	return storable, nil
}
