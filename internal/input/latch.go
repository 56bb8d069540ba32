package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Latch adapts event-style delivery: each callback overwrites the cached
// value and Sample returns whatever was delivered last. A missed release event
// leaves a modifier held until Reset.
type Latch struct {
	mu    sync.Mutex
	state State
}

func NewLatch() *Latch {
	return &Latch{}
}

func (l *Latch) OnMove(v mgl64.Vec2) {
	l.mu.Lock()
	l.state.Move = v
	l.mu.Unlock()
}

func (l *Latch) OnDive(pressed bool) {
	l.mu.Lock()
	l.state.Dive = pressed
	l.mu.Unlock()
}

func (l *Latch) OnAscend(pressed bool) {
	l.mu.Lock()
	l.state.Ascend = pressed
	l.mu.Unlock()
}

func (l *Latch) Sample() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Normalize(l.state)
}

// Reset clears every cached value.
func (l *Latch) Reset() {
	l.mu.Lock()
	l.state = State{}
	l.mu.Unlock()
}
