package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/beaver/internal/mathutil"
)

type FollowConfig struct {
	Offset mgl64.Vec3
	// LocalOffset rotates Offset by the target's rotation.
	LocalOffset bool
}

func DefaultFollowConfig() FollowConfig {
	return FollowConfig{Offset: mgl64.Vec3{0, 1, -5}, LocalOffset: true}
}

// Follow rigidly trails a target and looks at a point Offset.Y above it.
type Follow struct {
	cfg    FollowConfig
	pose   Pose
	placed bool
}

func NewFollow(cfg FollowConfig) *Follow {
	return &Follow{cfg: cfg, pose: Pose{Rotation: mgl64.QuatIdent()}}
}

func (f *Follow) Update(target mgl64.Vec3, rotation mgl64.Quat) {
	offset := f.cfg.Offset
	if f.cfg.LocalOffset {
		offset = rotation.Rotate(offset)
	}
	f.pose.Position = target.Add(offset)

	look := target.Add(mathutil.Up.Mul(f.cfg.Offset.Y()))
	dir := look.Sub(f.pose.Position)
	if dir.Len() > 1e-9 {
		dir = dir.Normalize()
		f.pose.Yaw = mgl64.RadToDeg(math.Atan2(dir.X(), dir.Z()))
		f.pose.Pitch = -mgl64.RadToDeg(math.Asin(mgl64.Clamp(dir.Y(), -1, 1)))
		f.pose.Rotation = mathutil.EulerRotation(f.pose.Pitch, f.pose.Yaw)
	}
	f.placed = true
}

// Track places the rig rigidly; the follow rig has no smoothing or pointer control.
func (f *Follow) Track(_ float64, target mgl64.Vec3, rotation mgl64.Quat, _ PointerInput) {
	f.Update(target, rotation)
}

func (f *Follow) Pose() Pose {
	return f.pose
}

func (f *Follow) SteeringBasis() (forward, right mgl64.Vec3, ok bool) {
	if !f.placed {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	forward, right = mathutil.HorizontalBasis(f.pose.Yaw)
	return forward, right, true
}
