package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/beaver/internal/mathutil"
)

// Pose is the virtual camera transform produced by a rig.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Yaw      float64
	Pitch    float64
}

// Forward is the direction the lens looks along.
func (p Pose) Forward() mgl64.Vec3 {
	return p.Rotation.Rotate(mathutil.Forward)
}

// Rig is a camera that can also steer locomotion. Track is called once per
// rendered frame with the target's latest pose.
type Rig interface {
	Track(dt float64, target mgl64.Vec3, rotation mgl64.Quat, in PointerInput)
	Pose() Pose
	SteeringBasis() (forward, right mgl64.Vec3, ok bool)
}

// Cursor is the pointer-cursor collaborator locked while orbiting.
type Cursor interface {
	SetLocked(locked bool)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
