package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/beaver/internal/input"
	"github.com/Versifine/beaver/internal/mathutil"
)

// frame is the read-only view a policy computes motion from.
type frame struct {
	dt         float64
	input      input.State
	position   mgl64.Vec3
	yaw        float64
	surfaceY   float64
	hasSurface bool
	forward    mgl64.Vec3
	right      mgl64.Vec3
	tuning     Tuning
}

// Motion is the relative change a policy requests for one tick.
type Motion struct {
	Translation mgl64.Vec3
	// Turn is the yaw change in degrees.
	Turn float64
}

type modePolicy struct {
	gravity bool
	drag    func(Tuning) float64
	motion  func(frame) Motion
}

var policies = [...]modePolicy{
	Ground: {
		gravity: true,
		drag:    func(Tuning) float64 { return 0 },
		motion:  groundMotion,
	},
	SurfaceSwim: {
		drag:   func(t Tuning) float64 { return t.SwimDrag },
		motion: surfaceSwimMotion,
	},
	Submerged: {
		drag:   func(t Tuning) float64 { return t.SubmergedDrag },
		motion: submergedMotion,
	},
}

func policyFor(m Mode) modePolicy {
	if m < 0 || int(m) >= len(policies) {
		return policies[Ground]
	}
	return policies[m]
}

func groundMotion(f frame) Motion {
	return horizontalMotion(f, f.tuning.GroundSpeed, f.tuning.GroundTurnRate)
}

func surfaceSwimMotion(f frame) Motion {
	m := horizontalMotion(f, f.tuning.SwimSpeed, f.tuning.SwimTurnRate)
	goal := f.surfaceY
	if f.hasSurface {
		goal += f.tuning.SurfaceOffset
	}
	y := f.position[1]
	m.Translation[1] = mathutil.Damp(y, goal, f.tuning.SurfaceFollowRate, f.dt) - y
	return m
}

func submergedMotion(f frame) Motion {
	m := horizontalMotion(f, f.tuning.SubmergedSpeed, f.tuning.SubmergedTurnRate)
	y := f.position[1]
	target := y + f.input.Vertical()*f.tuning.SubmergedVerticalSpeed*f.dt
	target = mgl64.Clamp(target, f.surfaceY-f.tuning.MaxDepth, f.surfaceY+f.tuning.AllowAboveSurface)
	m.Translation[1] = target - y
	return m
}

// horizontalMotion moves in the horizontal plane only; facing never pitches.
func horizontalMotion(f frame, speed, turnRate float64) Motion {
	maxTurn := turnRate * f.dt
	if f.tuning.Steering == SteeringTank {
		var m Motion
		if turn := f.input.Move[0]; math.Abs(turn) >= 1e-4 {
			m.Turn = turn * maxTurn
		}
		if fwd := f.input.Move[1]; math.Abs(fwd) >= 1e-4 {
			facing, _ := mathutil.HorizontalBasis(f.yaw)
			m.Translation = facing.Mul(fwd * speed * f.dt)
		}
		return m
	}

	dir := f.forward.Mul(f.input.Move[1]).Add(f.right.Mul(f.input.Move[0]))
	dir = mathutil.ClampMagnitude(mathutil.Flat(dir), 1)
	if dir.Len() < 1e-4 {
		return Motion{}
	}
	targetYaw := mgl64.RadToDeg(math.Atan2(dir[0], dir[2]))
	newYaw := mathutil.StepAngle(f.yaw, targetYaw, maxTurn)
	return Motion{
		Translation: dir.Mul(speed * f.dt),
		Turn:        mathutil.SignedAngleDelta(f.yaw, newYaw),
	}
}
