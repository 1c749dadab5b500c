package models

import "fmt"

// Sequence is an immutable ordered run of bipolar (+1/-1) outcomes.
// The zero value is an empty sequence.
type Sequence struct {
	values []int8
}

// NewSequence copies values into a Sequence.
// Every value must be -1 or +1.
func NewSequence(values ...int8) (Sequence, error) {
	out := make([]int8, len(values))
	for i, v := range values {
		if v != 1 && v != -1 {
			return Sequence{}, fmt.Errorf("element %d is %d, want ±1: %w", i, v, ErrInvalidParameter)
		}
		out[i] = v
	}
	return Sequence{values: out}, nil
}

// SequenceFrom wraps values without copying or validating them.
// Callers hand over ownership; the slice must not be modified afterwards.
func SequenceFrom(values []int8) Sequence {
	return Sequence{values: values}
}

// Len returns the number of trials in the sequence.
func (s Sequence) Len() int {
	return len(s.values)
}

// At returns the outcome at position i.
func (s Sequence) At(i int) int8 {
	return s.values[i]
}

// Values returns a copy of the outcomes.
func (s Sequence) Values() []int8 {
	out := make([]int8, len(s.values))
	copy(out, s.values)
	return out
}

// Negate returns the sign-flipped sequence.
func (s Sequence) Negate() Sequence {
	out := make([]int8, len(s.values))
	for i, v := range s.values {
		out[i] = -v
	}
	return Sequence{values: out}
}

// Equal reports whether both sequences hold the same outcomes.
func (s Sequence) Equal(other Sequence) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	for i := range s.values {
		if s.values[i] != other.values[i] {
			return false
		}
	}
	return true
}
