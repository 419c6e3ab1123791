package testdoubles

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/detached-state-go/snapshot"
)

// InMemorySnapshotStore is a snapshot store double that keeps snapshots in memory.
// Errors set with FailWith are returned by every subsequent operation.
type InMemorySnapshotStore struct {
	mu        sync.Mutex
	snapshots snapshot.StorableSnapshots
	failWith  error
}

// NewInMemorySnapshotStore creates an empty InMemorySnapshotStore.
func NewInMemorySnapshotStore() *InMemorySnapshotStore {
	return &InMemorySnapshotStore{snapshots: make(snapshot.StorableSnapshots, 0)}
}

// FailWith makes all following operations return err. Passing nil heals the store.
func (s *InMemorySnapshotStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failWith = err
}

// SaveSnapshot validates and stores a copy of storable.
func (s *InMemorySnapshotStore) SaveSnapshot(_ context.Context, storable snapshot.StorableSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	if err := storable.Validate(); err != nil {
		return err
	}

	storable.DataJSON = slices.Clone(storable.DataJSON)
	s.snapshots = append(s.snapshots, storable)

	return nil
}

// LoadSnapshot returns a copy of the snapshot with checkpointID, or nil, nil if there is none.
func (s *InMemorySnapshotStore) LoadSnapshot(_ context.Context, checkpointID uuid.UUID) (*snapshot.StorableSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	for _, storable := range s.snapshots {
		if storable.CheckpointID == checkpointID {
			return cloned(storable), nil
		}
	}

	return nil, nil
}

// LoadLatestSnapshot returns a copy of the last snapshot saved for ownerID, or nil, nil if there is none.
func (s *InMemorySnapshotStore) LoadLatestSnapshot(_ context.Context, ownerID string) (*snapshot.StorableSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	for i := len(s.snapshots) - 1; i >= 0; i-- {
		if s.snapshots[i].OwnerID == ownerID {
			return cloned(s.snapshots[i]), nil
		}
	}

	return nil, nil
}

// ListSnapshots returns copies of all snapshots of ownerID in the order they were saved.
func (s *InMemorySnapshotStore) ListSnapshots(_ context.Context, ownerID string) (snapshot.StorableSnapshots, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	found := make(snapshot.StorableSnapshots, 0)
	for _, storable := range s.snapshots {
		if storable.OwnerID == ownerID {
			found = append(found, *cloned(storable))
		}
	}

	return found, nil
}

// DeleteSnapshots removes all snapshots of ownerID.
func (s *InMemorySnapshotStore) DeleteSnapshots(_ context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	s.snapshots = slices.DeleteFunc(s.snapshots, func(storable snapshot.StorableSnapshot) bool {
		return storable.OwnerID == ownerID
	})

	return nil
}

// Count returns the number of stored snapshots across all owners.
func (s *InMemorySnapshotStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.snapshots)
}

func cloned(storable snapshot.StorableSnapshot) *snapshot.StorableSnapshot {
	storable.DataJSON = slices.Clone(storable.DataJSON)
	return &storable
}
