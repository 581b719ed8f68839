package schedule

import "errors"

// ErrAmbiguousInput is returned when a date or time fragment cannot be
// resolved relative to the supplied reference time (for example a bare
// weekday name with no "this" or "next" direction). Callers should re-prompt
// the user rather than guess.
var ErrAmbiguousInput = errors.New("ambiguous date or time reference")

// ErrInvalidInterval is returned when an interval or search window violates
// start < end, or a window has a non-positive duration. Inside the engine
// this indicates a programming error at the call site and is never retried.
var ErrInvalidInterval = errors.New("invalid interval")
