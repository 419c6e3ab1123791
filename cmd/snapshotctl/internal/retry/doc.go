// Package retry runs an operation with exponential backoff and jitter.
// snapshotctl uses it to wait for the database on startup.
package retry
