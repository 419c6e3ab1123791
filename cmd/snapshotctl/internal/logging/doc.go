// Package logging provides the zap-backed logger snapshotctl hands to the snapshot store and caretaker.
package logging
