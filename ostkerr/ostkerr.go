// Package ostkerr defines the error taxonomy shared by every physics-kernel
// component: time, units, frames, EOP, and celestial fields all fail through
// one of these sentinels so callers can branch with errors.Is instead of
// parsing messages.
package ostkerr

import "errors"

// Sentinel kinds. Wrap with errors.Wrap/Wrapf (github.com/pkg/errors) to add
// call-site context; check with errors.Is against these values.
var (
	// Undefined is raised by an operation on an undefined sentinel value
	// (zero-value Duration, Instant, etc). Indicates a programmer error.
	Undefined = errors.New("undefined value")

	// InvalidInput is raised for out-of-range or structurally invalid input:
	// month 13, hour 24, incompatible derived units, zero denominator,
	// degree exceeding a model's embedded maximum.
	InvalidInput = errors.New("invalid input")

	// RangeError is raised when an instant falls outside a file's observation
	// ∪ prediction coverage, or outside the pre-1972 leap-second table.
	RangeError = errors.New("value out of range")

	// DataUnavailable is raised when no EOP/space-weather file is loaded in
	// Manual mode, or a model is not attached to a Celestial.
	DataUnavailable = errors.New("data unavailable")

	// Timeout is raised when a repository lock is not acquired before the
	// configured timeout.
	Timeout = errors.New("operation timed out")

	// InvalidState is raised by an unlock when not locked, a duplicate file
	// load, or a frame-registry invariant violation (e.g. depth > 255).
	InvalidState = errors.New("invalid state")

	// NotImplemented is raised for a scale-conversion path that has no wiring
	// (e.g. through TCB, TDB).
	NotImplemented = errors.New("not implemented")

	// IOError is raised by network fetch or filesystem failure.
	IOError = errors.New("i/o error")
)
