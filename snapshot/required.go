package snapshot

import (
	"errors"
	"fmt"
	"strings"
)

// Presence is implemented by optional.Value and reports whether a field carries data.
type Presence interface {
	IsPresent() bool
}

// RequiredField names a snapshot field that must be present for Restore to succeed.
type RequiredField struct {
	name  string
	value Presence
}

// Field builds a RequiredField.
func Field(name string, value Presence) RequiredField {
	return RequiredField{name: name, value: value}
}

// RequireFields returns ErrIncompleteSnapshot naming every absent field, or nil if all are present.
func RequireFields(fields ...RequiredField) error {
	missing := make([]string, 0)

	for _, f := range fields {
		if f.value == nil || !f.value.IsPresent() {
			missing = append(missing, f.name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return errors.Join(
		ErrIncompleteSnapshot,
		fmt.Errorf("missing required fields: %s", strings.Join(missing, ", ")),
	)
}
