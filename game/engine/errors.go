package engine

import "errors"

// Rule failures are reported as one of the sentinel errors below, wrapped
// with context. Callers classify them with errors.Is. Every failure leaves
// the input World unchanged.
var (
	// ErrUnknownActor reports a named hero or treasure that is not present
	// or not owned.
	ErrUnknownActor = errors.New("unknown actor")

	// ErrUnknownTarget reports a face or kind the catalogue does not know.
	ErrUnknownTarget = errors.New("unknown target")

	// ErrCountMismatch reports a committed count that does not satisfy the
	// matching rule (one-for-one monsters, exact dragon party, one revive).
	ErrCountMismatch = errors.New("count mismatch")

	// ErrInvalidAction reports an actor/target combination with no rule.
	ErrInvalidAction = errors.New("invalid action")

	// ErrIllegalPhase reports an operation attempted in the wrong lifecycle
	// phase, e.g. applying a hero before the first descend.
	ErrIllegalPhase = errors.New("illegal phase")
)
