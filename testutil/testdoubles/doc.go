// Package testdoubles provides in-memory stand-ins for the module's persistence contracts.
package testdoubles
