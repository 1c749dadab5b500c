package random

import "sync"

// Scripted is a Source that replays fixed draws, for tests.
// Each script wraps around when exhausted so a Scripted source never fails.
// An empty bipolar script yields +1; an empty uniform script yields 0.
type Scripted struct {
	mu      sync.Mutex
	bipolar []int8
	uniform []float64
	nextBi  int
	nextUni int

	// Call tracking
	BipolarCalls int
	UniformCalls int
}

// NewScripted creates a Scripted source replaying the given draws.
func NewScripted(bipolar []int8, uniform []float64) *Scripted {
	return &Scripted{
		bipolar: append([]int8(nil), bipolar...),
		uniform: append([]float64(nil), uniform...),
	}
}

// Bipolar returns the next scripted bipolar draw.
func (s *Scripted) Bipolar() int8 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.BipolarCalls++
	if len(s.bipolar) == 0 {
		return 1
	}
	v := s.bipolar[s.nextBi%len(s.bipolar)]
	s.nextBi++
	return v
}

// Uniform returns the next scripted uniform draw.
func (s *Scripted) Uniform() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.UniformCalls++
	if len(s.uniform) == 0 {
		return 0
	}
	v := s.uniform[s.nextUni%len(s.uniform)]
	s.nextUni++
	return v
}
