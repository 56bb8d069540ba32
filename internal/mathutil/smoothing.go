package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DampFactor returns the fraction of the remaining gap closed by one
// exponential smoothing step of length dt at the given rate.
func DampFactor(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// Damp moves value toward goal with frame-rate independent exponential smoothing:
//
//	value += (goal - value) * (1 - e^(-rate*dt))
func Damp(value, goal, rate, dt float64) float64 {
	return value + (goal-value)*DampFactor(rate, dt)
}

func DampVec3(value, goal mgl64.Vec3, rate, dt float64) mgl64.Vec3 {
	return value.Add(goal.Sub(value).Mul(DampFactor(rate, dt)))
}
