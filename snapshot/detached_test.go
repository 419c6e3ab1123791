package snapshot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/detached-state-go/optional"
	"github.com/AntonStoeckl/detached-state-go/snapshot"
)

// leakyState keeps a back-reference to its producer, the way an inner class holding its outer instance does.
type leakyState struct {
	Owner *gauge
}

func (leakyState) SnapshotType() string { return "LeakyState" }

type aliasingState struct {
	Readings []int
}

func (aliasingState) SnapshotType() string { return "AliasingState" }

type callbackState struct {
	OnRestore func()
}

func (callbackState) SnapshotType() string { return "CallbackState" }

type channelState struct {
	Updates chan int
}

func (channelState) SnapshotType() string { return "ChannelState" }

type labelsOwner struct {
	labels map[string]string
}

type labelsState struct {
	Labels map[string]string
}

func (labelsState) SnapshotType() string { return "LabelsState" }

type nestedState struct {
	Inner *aliasingState
}

func (nestedState) SnapshotType() string { return "NestedState" }

type fieldPointerState struct {
	X *int
}

func (fieldPointerState) SnapshotType() string { return "FieldPointerState" }

func Test_VerifyDetached_AcceptsCapturedSnapshot(t *testing.T) {
	g := &gauge{x: 5, readings: []int{1, 2, 3}}

	err := snapshot.VerifyDetached(g.Capture(), g)

	assert.NoError(t, err)
}

func Test_VerifyDetached_AcceptsIndependentReferences(t *testing.T) {
	g := &gauge{x: 5, readings: []int{1, 2, 3}}
	independent := []int{1, 2, 3}

	err := snapshot.VerifyDetached(nestedState{Inner: &aliasingState{Readings: independent}}, g)

	assert.NoError(t, err)
}

func Test_VerifyDetached_DetectsBackReferences(t *testing.T) {
	g := &gauge{x: 5, readings: []int{1, 2, 3}}
	l := &labelsOwner{labels: map[string]string{"a": "b"}}

	tests := []struct {
		name         string
		snapshot     snapshot.Snapshot
		owner        any
		expectedPath string
	}{
		{
			name:         "pointer to owner",
			snapshot:     leakyState{Owner: g},
			owner:        g,
			expectedPath: "snapshot.Owner",
		},
		{
			name:         "shared slice backing array",
			snapshot:     aliasingState{Readings: g.readings},
			owner:        g,
			expectedPath: "snapshot.Readings",
		},
		{
			name:         "sub-slice into owner array",
			snapshot:     aliasingState{Readings: g.readings[1:2]},
			owner:        g,
			expectedPath: "snapshot.Readings",
		},
		{
			name:         "alias nested behind a pointer",
			snapshot:     nestedState{Inner: &aliasingState{Readings: g.readings}},
			owner:        g,
			expectedPath: "snapshot.Inner.Readings",
		},
		{
			name:         "pointer into owner field",
			snapshot:     fieldPointerState{X: &g.x},
			owner:        g,
			expectedPath: "snapshot.X",
		},
		{
			name:         "shared map",
			snapshot:     labelsState{Labels: l.labels},
			owner:        l,
			expectedPath: "snapshot.Labels",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := snapshot.VerifyDetached(tt.snapshot, tt.owner)

			assert.ErrorIs(t, err, snapshot.ErrNotDetached)
			assert.ErrorContains(t, err, tt.expectedPath)
		})
	}
}

func Test_VerifyDetached_RejectsUntraversableValues(t *testing.T) {
	g := &gauge{}

	tests := []struct {
		name     string
		snapshot snapshot.Snapshot
	}{
		{name: "func", snapshot: callbackState{OnRestore: func() { g.x++ }}},
		{name: "chan", snapshot: channelState{Updates: make(chan int)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, snapshot.VerifyDetached(tt.snapshot, g), snapshot.ErrNotDetached)
		})
	}
}

func Test_VerifyDetached_AcceptsNilReferences(t *testing.T) {
	g := &gauge{}

	assert.NoError(t, snapshot.VerifyDetached(callbackState{}, g))
	assert.NoError(t, snapshot.VerifyDetached(leakyState{}, g))
	assert.NoError(t, snapshot.VerifyDetached(gaugeState{X: optional.None[int]()}, g))
}
