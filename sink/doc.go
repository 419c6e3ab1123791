// Package sink provides OptionalSink, a write target that distinguishes a mandatory value
// from a value the caller may legitimately not have.
//
// Put requires a present value and fails with ErrInvalidArgument when given nil of a
// nil-able type. PutIfPresent accepts an optional.Value and silently ignores absence.
//
// Holder is the reference implementation. It holds at most one value and is not safe for
// concurrent use; callers that share a Holder across goroutines serialize access themselves.
package sink
