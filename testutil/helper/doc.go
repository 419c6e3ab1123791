// Package helper provides test spies and small arrange helpers shared by the module's tests.
package helper
