package input

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/beaver/internal/mathutil"
)

// State is one tick's worth of input. It is rebuilt every tick and held
// immutable while that tick is evaluated.
type State struct {
	// Move is (strafe, forward) intent.
	Move   mgl64.Vec2
	Dive   bool
	Ascend bool
}

// Normalize clamps each move axis to [-1, 1] and the combined magnitude to 1.
func Normalize(s State) State {
	s.Move = mathutil.ClampUnit(s.Move)
	return s
}

// Vertical is +1 for ascend, -1 for dive and 0 when both or neither are held.
func (s State) Vertical() float64 {
	var v float64
	if s.Ascend {
		v++
	}
	if s.Dive {
		v--
	}
	return v
}

// Source delivers the input for the upcoming tick.
type Source interface {
	Sample() State
}

// Resetter is implemented by sources that cache input between samples.
type Resetter interface {
	Reset()
}

// SourceFunc adapts a polling function, e.g. a read of live device key state.
type SourceFunc func() State

func (f SourceFunc) Sample() State {
	if f == nil {
		return State{}
	}
	return f()
}
