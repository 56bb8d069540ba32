package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
	Right   = mgl64.Vec3{1, 0, 0}
)

// StepAngle turns current toward target by at most maxStep degrees along the
// shorter arc. A non-positive maxStep snaps to target.
func StepAngle(current, target, maxStep float64) float64 {
	if maxStep <= 0 {
		return NormalizeAngle(target)
	}
	delta := SignedAngleDelta(current, target)
	if delta > maxStep {
		delta = maxStep
	} else if delta < -maxStep {
		delta = -maxStep
	}
	return NormalizeAngle(current + delta)
}

func SignedAngleDelta(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// NormalizeAngle maps v into (-180, 180].
func NormalizeAngle(v float64) float64 {
	v = math.Mod(v, 360)
	if v <= -180 {
		v += 360
	} else if v > 180 {
		v -= 360
	}
	return v
}

// YawRotation is a rotation of deg degrees about the world up axis. Positive
// yaw turns +Z toward +X.
func YawRotation(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), Up)
}

// EulerRotation composes pitch (about local X, positive looks down) after yaw.
func EulerRotation(pitch, yaw float64) mgl64.Quat {
	return YawRotation(yaw).Mul(mgl64.QuatRotate(mgl64.DegToRad(pitch), Right))
}

// YawOf extracts the heading of q in degrees. A rotation whose forward axis
// points straight up or down has no heading and yields 0.
func YawOf(q mgl64.Quat) float64 {
	f := q.Rotate(Forward)
	if math.Abs(f[0]) < 1e-12 && math.Abs(f[2]) < 1e-12 {
		return 0
	}
	return mgl64.RadToDeg(math.Atan2(f[0], f[2]))
}

// HorizontalBasis returns the forward and right axes of a heading.
func HorizontalBasis(yaw float64) (forward, right mgl64.Vec3) {
	rad := mgl64.DegToRad(yaw)
	sin, cos := math.Sincos(rad)
	return mgl64.Vec3{sin, 0, cos}, mgl64.Vec3{cos, 0, -sin}
}
