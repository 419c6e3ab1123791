package snapshot_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/detached-state-go/optional"
	"github.com/AntonStoeckl/detached-state-go/snapshot"
)

type unnamedState struct{}

func (unnamedState) SnapshotType() string { return "" }

// impostorGaugeState claims the name of gaugeState without being it.
type impostorGaugeState struct {
	X string `json:"x"`
}

func (impostorGaugeState) SnapshotType() string { return "GaugeState" }

func givenRegistry(t *testing.T) *snapshot.Registry {
	r := snapshot.NewRegistry()
	require.NoError(t, snapshot.RegisterType[gaugeState](r), "error in arranging test data")
	require.NoError(t, snapshot.RegisterType[otherState](r), "error in arranging test data")

	return r
}

func Test_Registry_EncodeDecode_RoundTrip(t *testing.T) {
	// arrange
	r := givenRegistry(t)
	g := &gauge{x: 5, readings: []int{4, 2}}
	captured := g.Capture()

	// act
	storable, encodeErr := r.Encode("gauge-1", captured)
	decoded, decodeErr := r.Decode(storable)

	// assert
	require.NoError(t, encodeErr)
	require.NoError(t, decodeErr)
	assert.Equal(t, "gauge-1", storable.OwnerID)
	assert.Equal(t, "GaugeState", storable.SnapshotType)
	assert.NotEqual(t, uuid.Nil, storable.CheckpointID)
	assert.False(t, storable.CapturedAt.IsZero())
	assert.JSONEq(t, `{"x":5,"readings":[4,2]}`, string(storable.DataJSON))
	assert.Equal(t, captured, decoded)
}

func Test_Registry_DecodedSnapshot_RestoresComponent(t *testing.T) {
	// arrange
	r := givenRegistry(t)
	g := &gauge{x: 5}
	storable, err := r.Encode("gauge-1", g.Capture())
	require.NoError(t, err)
	g.x = 9

	// act
	decoded, err := r.Decode(storable)
	require.NoError(t, err)
	restoreErr := g.Restore(decoded)

	// assert
	require.NoError(t, restoreErr)
	assert.Equal(t, 5, g.x)
}

func Test_Registry_DecodedSnapshot_WithMissingField_IsIncomplete(t *testing.T) {
	r := givenRegistry(t)
	storable, err := snapshot.BuildStorableSnapshot("gauge-1", "GaugeState", []byte(`{"readings":[1]}`))
	require.NoError(t, err)

	decoded, err := r.Decode(storable)
	require.NoError(t, err)

	assert.ErrorIs(t, (&gauge{}).Restore(decoded), snapshot.ErrIncompleteSnapshot)
}

func Test_Registry_DecodedSnapshot_OfOtherVariant_IsMismatch(t *testing.T) {
	r := givenRegistry(t)
	storable, err := r.Encode("switch-1", otherState{On: optional.Some(true)})
	require.NoError(t, err)

	decoded, err := r.Decode(storable)
	require.NoError(t, err)

	assert.ErrorIs(t, (&gauge{}).Restore(decoded), snapshot.ErrTypeMismatch)
}

func Test_Registry_ErrorCases(t *testing.T) {
	r := givenRegistry(t)

	tests := []struct {
		name        string
		act         func() error
		expectedErr error
	}{
		{
			name: "encode unregistered type",
			act: func() error {
				_, err := r.Encode("owner", leakyState{})
				return err
			},
			expectedErr: snapshot.ErrUnknownSnapshotType,
		},
		{
			name: "encode nil snapshot",
			act: func() error {
				_, err := r.Encode("owner", nil)
				return err
			},
			expectedErr: snapshot.ErrSnapshotEncodingFailed,
		},
		{
			name: "encode with empty owner",
			act: func() error {
				_, err := r.Encode("", gaugeState{X: optional.Some(1)})
				return err
			},
			expectedErr: snapshot.ErrEmptyOwnerID,
		},
		{
			name: "encode func field",
			act: func() error {
				local := snapshot.NewRegistry()
				snapshot.MustRegisterType[callbackState](local)
				_, err := local.Encode("owner", callbackState{OnRestore: func() {}})
				return err
			},
			expectedErr: snapshot.ErrSnapshotEncodingFailed,
		},
		{
			name: "decode unregistered type",
			act: func() error {
				_, err := r.Decode(snapshot.StorableSnapshot{SnapshotType: "Nope", DataJSON: []byte(`{}`)})
				return err
			},
			expectedErr: snapshot.ErrUnknownSnapshotType,
		},
		{
			name: "decode wrong field type",
			act: func() error {
				_, err := r.Decode(snapshot.StorableSnapshot{SnapshotType: "GaugeState", DataJSON: []byte(`{"x":"five"}`)})
				return err
			},
			expectedErr: snapshot.ErrSnapshotDecodingFailed,
		},
		{
			name: "register twice",
			act: func() error {
				return snapshot.RegisterType[gaugeState](r)
			},
			expectedErr: snapshot.ErrDuplicateSnapshotType,
		},
		{
			name: "register pointer type",
			act: func() error {
				return snapshot.RegisterType[*gaugeState](snapshot.NewRegistry())
			},
			expectedErr: snapshot.ErrInvalidSnapshotType,
		},
		{
			name: "register interface type",
			act: func() error {
				return snapshot.RegisterType[snapshot.Snapshot](snapshot.NewRegistry())
			},
			expectedErr: snapshot.ErrInvalidSnapshotType,
		},
		{
			name: "encode other type under a registered name",
			act: func() error {
				_, err := r.Encode("owner", impostorGaugeState{X: "five"})
				return err
			},
			expectedErr: snapshot.ErrTypeMismatch,
		},
		{
			name: "encode pointer to registered type",
			act: func() error {
				_, err := r.Encode("owner", &gaugeState{X: optional.Some(1)})
				return err
			},
			expectedErr: snapshot.ErrTypeMismatch,
		},
		{
			name: "register empty type name",
			act: func() error {
				return snapshot.RegisterType[unnamedState](r)
			},
			expectedErr: snapshot.ErrEmptySnapshotType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			assert.NotPanics(t, func() { err = tt.act() })
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func Test_Registry_Knows(t *testing.T) {
	r := givenRegistry(t)

	assert.True(t, r.Knows("GaugeState"))
	assert.False(t, r.Knows("LeakyState"))
}

func Test_MustRegisterType_PanicsOnDuplicate(t *testing.T) {
	r := givenRegistry(t)

	assert.Panics(t, func() { snapshot.MustRegisterType[gaugeState](r) })
}
