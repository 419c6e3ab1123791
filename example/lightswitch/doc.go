// Package lightswitch holds two example Toggleable devices, Switch and Camera.
// Their snapshots are distinct types, so a CameraState handed to a Switch is rejected with
// snapshot.ErrTypeMismatch instead of being misread.
package lightswitch
