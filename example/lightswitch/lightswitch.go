package lightswitch

import (
	"errors"
	"sync"

	"github.com/AntonStoeckl/detached-state-go/optional"
	"github.com/AntonStoeckl/detached-state-go/snapshot"
)

const (
	// SwitchStateType is the snapshot type name of SwitchState.
	SwitchStateType = "SwitchState"

	// CameraStateType is the snapshot type name of CameraState.
	CameraStateType = "CameraState"
)

// Toggleable is a device that flips between two modes.
type Toggleable interface {
	snapshot.Snapshotable
	Toggle()
}

// Switch is a light switch. All methods are safe for concurrent use.
type Switch struct {
	mu      sync.Mutex
	on      bool
	toggles int
}

// SwitchState is the detached state of a Switch.
type SwitchState struct {
	On      optional.Value[bool] `json:"on"`
	Toggles optional.Value[int]  `json:"toggles"`
}

// SnapshotType implements snapshot.Snapshot.
func (SwitchState) SnapshotType() string {
	return SwitchStateType
}

// NewSwitch creates a Switch that is off.
func NewSwitch() *Switch {
	return &Switch{}
}

// Toggle implements Toggleable.
func (s *Switch) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.on = !s.on
	s.toggles++
}

func (s *Switch) On() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.on
}

func (s *Switch) Toggles() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.toggles
}

// Capture implements snapshot.Snapshotable.
func (s *Switch) Capture() snapshot.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SwitchState{
		On:      optional.Some(s.on),
		Toggles: optional.Some(s.toggles),
	}
}

// Restore implements snapshot.Snapshotable.
func (s *Switch) Restore(snap snapshot.Snapshot) error {
	state, err := snapshot.As[SwitchState](snap)
	if err != nil {
		return err
	}

	err = snapshot.RequireFields(
		snapshot.Field("on", state.On),
		snapshot.Field("toggles", state.Toggles),
	)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.on, _ = state.On.Get()
	s.toggles, _ = state.Toggles.Get()

	return nil
}

// Camera takes a shot on every toggle.
type Camera struct {
	mu    sync.Mutex
	shots int
}

// CameraState is the detached state of a Camera.
type CameraState struct {
	Shots optional.Value[int] `json:"shots"`
}

// SnapshotType implements snapshot.Snapshot.
func (CameraState) SnapshotType() string {
	return CameraStateType
}

// NewCamera creates a Camera without shots.
func NewCamera() *Camera {
	return &Camera{}
}

// Toggle implements Toggleable.
func (c *Camera) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.shots++
}

func (c *Camera) Shots() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.shots
}

// Capture implements snapshot.Snapshotable.
func (c *Camera) Capture() snapshot.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CameraState{Shots: optional.Some(c.shots)}
}

// Restore implements snapshot.Snapshotable.
func (c *Camera) Restore(snap snapshot.Snapshot) error {
	state, err := snapshot.As[CameraState](snap)
	if err != nil {
		return err
	}

	if err = snapshot.RequireFields(snapshot.Field("shots", state.Shots)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.shots, _ = state.Shots.Get()

	return nil
}

// Register makes SwitchState and CameraState decodable by r.
func Register(r *snapshot.Registry) error {
	return errors.Join(
		snapshot.RegisterType[SwitchState](r),
		snapshot.RegisterType[CameraState](r),
	)
}

var (
	_ Toggleable = (*Switch)(nil)
	_ Toggleable = (*Camera)(nil)
)
