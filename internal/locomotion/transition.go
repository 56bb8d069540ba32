package locomotion

import "math"

// transitionInput is everything the transition table may look at.
type transitionInput struct {
	mode        Mode
	inWater     bool
	dive        bool
	divePressed bool
	y           float64
	surfaceY    float64
}

// nextMode applies the transition rules in precedence order. At most one
// rule fires per tick, so entering water never reaches Submerged directly.
func nextMode(in transitionInput, t Tuning) Mode {
	if !in.inWater {
		return Ground
	}
	switch in.mode {
	case Ground:
		return SurfaceSwim
	case SurfaceSwim:
		if t.HoldToDive && in.dive || !t.HoldToDive && in.divePressed {
			return Submerged
		}
	case Submerged:
		if t.HoldToDive {
			if !in.dive && math.Abs(in.y-in.surfaceY) <= t.ExitDistance {
				return SurfaceSwim
			}
		} else if in.divePressed {
			return SurfaceSwim
		}
	}
	return in.mode
}
