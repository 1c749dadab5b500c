package models

import "errors"

// Every message is prefixed with "resonance:" so log lines are easy to grep.
// Return these directly or wrap with fmt.Errorf("ctx: %w", ErrX); callers
// match with errors.Is.
var (
	// ErrInvalidParameter is returned when T, N or p lies outside its valid
	// domain, or when no linked candidate exists for the requested pool.
	ErrInvalidParameter = errors.New("resonance: invalid parameter")

	// ErrShapeMismatch is returned when two compared sequences differ in
	// length. Reaching it means a programming error, not bad user input.
	ErrShapeMismatch = errors.New("resonance: sequence length mismatch")
)
