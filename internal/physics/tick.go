package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// State is the physical body of the actor.
type State struct {
	Position       mgl64.Vec3
	Rotation       mgl64.Quat
	Velocity       mgl64.Vec3
	GravityEnabled bool
	LinearDrag     float64
	OnGround       bool
}

// Pending holds the relative moves requested for the next step.
type Pending struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
}

func NoPending() Pending {
	return Pending{Rotation: mgl64.QuatIdent()}
}

// Step advances state by dt. Requested moves and velocity displacement are
// swept together through the block store, so a kinematic move still stops at
// walls and floors within the same step.
func Step(state *State, pending Pending, dt float64, halfExtents mgl64.Vec3, blockStore BlockStore) {
	if state == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}

	if state.GravityEnabled {
		state.Velocity[1] -= GravityAcceleration * dt
	}
	if state.LinearDrag > 0 {
		state.Velocity = state.Velocity.Mul(1 / (1 + state.LinearDrag*dt))
	}

	delta := pending.Translation.Add(state.Velocity.Mul(dt))
	var clipped [3]bool
	state.Position, clipped = ResolveMovement(state.Position, delta, halfExtents, blockStore)
	for axis, hit := range clipped {
		if hit {
			state.Velocity[axis] = 0
		}
	}

	rot := pending.Rotation
	if rot == (mgl64.Quat{}) {
		rot = mgl64.QuatIdent()
	}
	state.Rotation = rot.Mul(state.Rotation).Normalize()

	state.OnGround = isStandingOnSolidBlock(state.Position, halfExtents, blockStore)
	zeroResidualVelocity(&state.Velocity)
}

func zeroResidualVelocity(v *mgl64.Vec3) {
	for i := range v {
		if v[i] > -MinimumResidualSpeed && v[i] < MinimumResidualSpeed {
			v[i] = 0
		}
	}
}

func isStandingOnSolidBlock(pos, halfExtents mgl64.Vec3, blockStore BlockStore) bool {
	if blockStore == nil {
		return false
	}
	probe := BoxAt(pos, halfExtents)
	probe.Min[1] -= GroundProbeDistance
	probe.Max[1] -= GroundProbeDistance
	return CollidesWithBlock(probe, blockStore)
}
