package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/beaver/internal/mathutil"
)

// scrollUnit converts raw wheel units (120 per notch on most devices) to zoom steps.
const (
	scrollUnit      = 0.01
	scrollDeadzone  = 0.01
	defaultDistance = 6.0
)

type OrbitConfig struct {
	YawSpeed   float64
	PitchSpeed float64
	MinPitch   float64
	MaxPitch   float64

	Distance    float64
	MinDistance float64
	MaxDistance float64
	ZoomSpeed   float64
	ZoomSmooth  float64

	PositionSmooth float64

	// RequireButton gates orbiting on a held pointer button.
	RequireButton bool
	// LockCursor locks the cursor while orbiting.
	LockCursor bool
}

func DefaultOrbitConfig() OrbitConfig {
	return OrbitConfig{
		YawSpeed:       140,
		PitchSpeed:     120,
		MinPitch:       -25,
		MaxPitch:       65,
		Distance:       defaultDistance,
		MinDistance:    2.5,
		MaxDistance:    12,
		ZoomSpeed:      2,
		ZoomSmooth:     14,
		PositionSmooth: 12,
		RequireButton:  true,
	}
}

func (c OrbitConfig) Validate() error {
	var errs []error
	if c.MinPitch > c.MaxPitch {
		errs = append(errs, fmt.Errorf("min_pitch %v > max_pitch %v", c.MinPitch, c.MaxPitch))
	}
	if c.MinDistance > c.MaxDistance {
		errs = append(errs, fmt.Errorf("min_distance %v > max_distance %v", c.MinDistance, c.MaxDistance))
	}
	if c.MinDistance < 0 {
		errs = append(errs, fmt.Errorf("min_distance must be >= 0, got %v", c.MinDistance))
	}
	if c.ZoomSmooth <= 0 || c.PositionSmooth <= 0 {
		errs = append(errs, errors.New("zoom_smooth and position_smooth must be > 0"))
	}
	return errors.Join(errs...)
}

// PointerInput is one frame of pointer state.
type PointerInput struct {
	Delta     mgl64.Vec2
	Scroll    float64
	Primary   bool
	Secondary bool
}

// Orbit circles a target at a zoomable distance. The pivot follows the
// target with exponential smoothing and the lens sits behind the pivot along
// its local backward axis.
type Orbit struct {
	cfg OrbitConfig

	yaw            float64
	pitch          float64
	distance       float64
	targetDistance float64

	pivot    mgl64.Vec3
	rotation mgl64.Quat
	position mgl64.Vec3

	cursor       Cursor
	cursorLocked bool
}

func NewOrbit(cfg OrbitConfig, pivot mgl64.Vec3, yaw, pitch float64) *Orbit {
	o := &Orbit{
		cfg:   cfg,
		yaw:   mathutil.NormalizeAngle(finite(yaw)),
		pitch: mgl64.Clamp(finite(pitch), cfg.MinPitch, cfg.MaxPitch),
		pivot: pivot,
	}
	o.distance = mgl64.Clamp(cfg.Distance, cfg.MinDistance, cfg.MaxDistance)
	o.targetDistance = o.distance
	o.place()
	return o
}

func (o *Orbit) SetCursor(c Cursor) {
	o.cursor = c
}

// Update advances the rig by dt toward target using this frame's pointer input.
func (o *Orbit) Update(dt float64, target mgl64.Vec3, in PointerInput) {
	if dt < 0 {
		dt = 0
	}
	o.handleOrbit(dt, in)
	o.handleZoom(in)

	o.pivot = mathutil.DampVec3(o.pivot, target, o.cfg.PositionSmooth, dt)
	o.distance = mathutil.Damp(o.distance, o.targetDistance, o.cfg.ZoomSmooth, dt)
	o.distance = mgl64.Clamp(o.distance, o.cfg.MinDistance, o.cfg.MaxDistance)
	o.place()
}

// Track orbits the target position; the target's rotation is ignored.
func (o *Orbit) Track(dt float64, target mgl64.Vec3, _ mgl64.Quat, in PointerInput) {
	o.Update(dt, target, in)
}

func (o *Orbit) handleOrbit(dt float64, in PointerInput) {
	active := !o.cfg.RequireButton || in.Primary || in.Secondary
	o.setCursorLocked(o.cfg.LockCursor && active)

	if active {
		o.yaw = mathutil.NormalizeAngle(o.yaw + finite(in.Delta[0])*o.cfg.YawSpeed*dt)
		o.pitch -= finite(in.Delta[1]) * o.cfg.PitchSpeed * dt
	}
	o.pitch = mgl64.Clamp(finite(o.pitch), o.cfg.MinPitch, o.cfg.MaxPitch)
}

func (o *Orbit) handleZoom(in PointerInput) {
	scroll := finite(in.Scroll)
	if math.Abs(scroll) > scrollDeadzone {
		o.targetDistance -= scroll * scrollUnit * o.cfg.ZoomSpeed
	}
	o.targetDistance = mgl64.Clamp(finite(o.targetDistance), o.cfg.MinDistance, o.cfg.MaxDistance)
}

func (o *Orbit) setCursorLocked(locked bool) {
	if o.cursor == nil || locked == o.cursorLocked {
		return
	}
	o.cursorLocked = locked
	o.cursor.SetLocked(locked)
}

func (o *Orbit) place() {
	o.rotation = mathutil.EulerRotation(o.pitch, o.yaw)
	o.position = o.pivot.Add(o.rotation.Rotate(mgl64.Vec3{0, 0, -o.distance}))
}

func (o *Orbit) Pose() Pose {
	return Pose{Position: o.position, Rotation: o.rotation, Yaw: o.yaw, Pitch: o.pitch}
}

// SteeringBasis is the horizontal facing of the rig.
func (o *Orbit) SteeringBasis() (forward, right mgl64.Vec3, ok bool) {
	forward, right = mathutil.HorizontalBasis(o.yaw)
	return forward, right, true
}

func (o *Orbit) Pivot() mgl64.Vec3 { return o.pivot }
func (o *Orbit) Distance() float64 { return o.distance }
func (o *Orbit) TargetDistance() float64 { return o.targetDistance }
func (o *Orbit) Yaw() float64 { return o.yaw }
func (o *Orbit) Pitch() float64 { return o.pitch }
func (o *Orbit) CursorLocked() bool { return o.cursorLocked }
func (o *Orbit) Config() OrbitConfig { return o.cfg }
