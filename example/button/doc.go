// Package button is an example Snapshotable view element.
//
// A Button hands out a ButtonState that only carries copies of its fields, so the state can be
// serialized and kept after the Button is gone:
//
//	b := button.New("OK")
//	saved := b.Capture()
//	b.Press()
//	_ = b.Restore(saved) // released again, zero clicks
package button
