// Package cmd holds the cobra command tree of snapshotctl.
package cmd
