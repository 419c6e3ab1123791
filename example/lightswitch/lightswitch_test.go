package lightswitch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/detached-state-go/example/lightswitch"
	"github.com/AntonStoeckl/detached-state-go/optional"
	"github.com/AntonStoeckl/detached-state-go/snapshot"
)

func Test_Switch_Restore_BringsBackCapturedState(t *testing.T) {
	// arrange
	s := lightswitch.NewSwitch()
	s.Toggle()
	saved := s.Capture()

	// act
	s.Toggle()
	s.Toggle()
	err := s.Restore(saved)

	// assert
	require.NoError(t, err)
	assert.True(t, s.On())
	assert.Equal(t, 1, s.Toggles())
}

func Test_Camera_Restore_BringsBackCapturedState(t *testing.T) {
	c := lightswitch.NewCamera()
	c.Toggle()
	saved := c.Capture()

	c.Toggle()
	err := c.Restore(saved)

	require.NoError(t, err)
	assert.Equal(t, 1, c.Shots())
}

func Test_Toggleables_RejectEachOthersState(t *testing.T) {
	s := lightswitch.NewSwitch()
	s.Toggle()
	c := lightswitch.NewCamera()
	c.Toggle()
	c.Toggle()

	tests := []struct {
		name      string
		component lightswitch.Toggleable
		foreign   snapshot.Snapshot
	}{
		{name: "camera state into switch", component: s, foreign: c.Capture()},
		{name: "switch state into camera", component: c, foreign: s.Capture()},
		{name: "pointer to own state", component: s, foreign: &lightswitch.SwitchState{On: optional.Some(false), Toggles: optional.Some(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.component.Restore(tt.foreign), snapshot.ErrTypeMismatch)
		})
	}

	assert.True(t, s.On())
	assert.Equal(t, 1, s.Toggles())
	assert.Equal(t, 2, c.Shots())
}

func Test_Switch_Restore_RejectsIncompleteState(t *testing.T) {
	s := lightswitch.NewSwitch()

	err := s.Restore(lightswitch.SwitchState{On: optional.Some(true)})

	assert.ErrorIs(t, err, snapshot.ErrIncompleteSnapshot)
	assert.ErrorContains(t, err, "toggles")
	assert.False(t, s.On())
}

func Test_Register_RegistersBothStates(t *testing.T) {
	r := snapshot.NewRegistry()

	require.NoError(t, lightswitch.Register(r))

	assert.True(t, r.Knows(lightswitch.SwitchStateType))
	assert.True(t, r.Knows(lightswitch.CameraStateType))
	assert.ErrorIs(t, lightswitch.Register(r), snapshot.ErrDuplicateSnapshotType)
}

func Test_Captures_AreDetached(t *testing.T) {
	s := lightswitch.NewSwitch()
	c := lightswitch.NewCamera()

	assert.NoError(t, snapshot.VerifyDetached(s.Capture(), s))
	assert.NoError(t, snapshot.VerifyDetached(c.Capture(), c))
}
