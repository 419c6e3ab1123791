package button

import (
	"slices"
	"sync"

	"github.com/AntonStoeckl/detached-state-go/optional"
	"github.com/AntonStoeckl/detached-state-go/snapshot"
)

// ButtonStateType is the snapshot type name of ButtonState.
const ButtonStateType = "ButtonState"

// Button is a clickable view element. All methods are safe for concurrent use.
type Button struct {
	mu      sync.Mutex
	label   string
	pressed bool
	clicks  int
	tags    []string
}

// ButtonState is the detached state of a Button.
// It holds copies only, never the Button itself, so it can be stored or sent anywhere.
type ButtonState struct {
	Label   optional.Value[string] `json:"label"`
	Pressed optional.Value[bool]   `json:"pressed"`
	Clicks  optional.Value[int]    `json:"clicks"`
	Tags    []string               `json:"tags,omitempty"`
}

// SnapshotType implements snapshot.Snapshot.
func (ButtonState) SnapshotType() string {
	return ButtonStateType
}

// New creates a released Button.
func New(label string, tags ...string) *Button {
	return &Button{
		label: label,
		tags:  slices.Clone(tags),
	}
}

// Register makes ButtonState decodable by r.
func Register(r *snapshot.Registry) error {
	return snapshot.RegisterType[ButtonState](r)
}

// Press presses the Button and counts the click. Pressing a pressed Button does nothing.
func (b *Button) Press() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pressed {
		return
	}

	b.pressed = true
	b.clicks++
}

// Release releases the Button.
func (b *Button) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pressed = false
}

// Relabel sets a new label.
func (b *Button) Relabel(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.label = label
}

// Tag adds tag unless the Button already carries it.
func (b *Button) Tag(tag string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if slices.Contains(b.tags, tag) {
		return
	}

	b.tags = append(b.tags, tag)
}

func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.label
}

func (b *Button) Pressed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.pressed
}

func (b *Button) Clicks() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.clicks
}

// Tags returns a copy of the tags.
func (b *Button) Tags() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.tags)
}

// Capture implements snapshot.Snapshotable.
func (b *Button) Capture() snapshot.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return ButtonState{
		Label:   optional.Some(b.label),
		Pressed: optional.Some(b.pressed),
		Clicks:  optional.Some(b.clicks),
		Tags:    cloneTags(b.tags),
	}
}

// Restore implements snapshot.Snapshotable. Absent or empty tags restore an untagged Button.
func (b *Button) Restore(s snapshot.Snapshot) error {
	state, err := snapshot.As[ButtonState](s)
	if err != nil {
		return err
	}

	err = snapshot.RequireFields(
		snapshot.Field("label", state.Label),
		snapshot.Field("pressed", state.Pressed),
		snapshot.Field("clicks", state.Clicks),
	)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.label, _ = state.Label.Get()
	b.pressed, _ = state.Pressed.Get()
	b.clicks, _ = state.Clicks.Get()
	b.tags = cloneTags(state.Tags)

	return nil
}

// cloneTags copies tags. An empty list becomes nil, which is what a decoded ButtonState without tags holds.
func cloneTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	return slices.Clone(tags)
}

var _ snapshot.Snapshotable = (*Button)(nil)
