// Package settings resolves the snapshotctl configuration from defaults, a YAML file,
// environment variables and command line flags, in that order of precedence.
package settings
