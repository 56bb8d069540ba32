package mathutil

import "github.com/go-gl/mathgl/mgl64"

// ClampUnit clamps each axis to [-1, 1] and then the combined magnitude to 1.
func ClampUnit(v mgl64.Vec2) mgl64.Vec2 {
	v = mgl64.Vec2{mgl64.Clamp(v[0], -1, 1), mgl64.Clamp(v[1], -1, 1)}
	if l := v.Len(); l > 1 {
		v = v.Mul(1 / l)
	}
	return v
}

func ClampMagnitude(v mgl64.Vec3, maxLen float64) mgl64.Vec3 {
	if l := v.Len(); l > maxLen && l > 0 {
		return v.Mul(maxLen / l)
	}
	return v
}

// Flat drops the vertical component.
func Flat(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

func NearlyZero(v float64) bool {
	return v < 1e-9 && v > -1e-9
}
