package sat

import "fmt"

// ParseError reports malformed DIMACS input (spec.md §7).
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Msg)
}

// UnterminatedClauseError reports a stream that ended mid-clause: literals
// were buffered but no terminating 0 was seen.
type UnterminatedClauseError struct {
	Pending []Literal
}

func (e *UnterminatedClauseError) Error() string {
	return fmt.Sprintf("unterminated clause: %d literal(s) buffered with no terminating 0", len(e.Pending))
}

// UnsatisfiableError is returned (never panicked) when the formula has no
// model. It is a normal outcome, not a bug.
type UnsatisfiableError struct {
	Reason string
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("UNSAT: %s", e.Reason)
}

// InvariantViolation marks an internal bug: an inconsistent graph, a
// missing clause/variable, a double unassign. It must never fire on valid
// input, so callers are expected to let it panic and abort with the
// diagnostic rather than recover from it.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Msg)
}

func panicInvariant(format string, args ...interface{}) {
	panic(&InvariantViolation{Msg: fmt.Sprintf(format, args...)})
}
