package input

import (
	"sync"
	"time"
)

// Step holds State for Duration of simulated time.
type Step struct {
	Duration time.Duration
	State    State
}

// Script replays a fixed sequence of steps against simulated time. The
// clock advances only through Advance, so replays are deterministic.
type Script struct {
	mu      sync.Mutex
	steps   []Step
	elapsed time.Duration
}

func NewScript(steps ...Step) *Script {
	return &Script{steps: append([]Step(nil), steps...)}
}

func (s *Script) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.mu.Lock()
	s.elapsed += dt
	s.mu.Unlock()
}

func (s *Script) Sample() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	var end time.Duration
	for _, step := range s.steps {
		end += step.Duration
		if s.elapsed < end {
			return Normalize(step.State)
		}
	}
	return State{}
}

// Done reports whether every step has been played.
func (s *Script) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total time.Duration
	for _, step := range s.steps {
		total += step.Duration
	}
	return s.elapsed >= total
}

// Rewind restarts the script from its first step.
func (s *Script) Rewind() {
	s.mu.Lock()
	s.elapsed = 0
	s.mu.Unlock()
}
