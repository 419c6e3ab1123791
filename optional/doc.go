// Package optional provides Value, an explicit presence marker for a single value.
//
// A Value is either present (built with Some or Of) or absent (the zero value, or None).
// It is used in two places:
//   - as the argument of sink.OptionalSink.PutIfPresent, where absence is a defined no-op
//   - as the type of required snapshot fields, so that restore can tell an all-zero snapshot
//     that was captured from one that was built by hand and is missing data
//
// Values are plain structs and copy by value. JSON encoding renders an absent Value as null,
// and both null and a missing key decode to an absent Value.
package optional
