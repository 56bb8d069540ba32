package physics

import "github.com/go-gl/mathgl/mgl64"

const (
	GravityAcceleration    = 9.81
	GroundProbeDistance    = 0.001
	CollisionAxisTolerance = 1e-9
	MinimumResidualSpeed   = 1e-4
)

// ActorHalfExtents is the default collision box of the actor: low and long.
var ActorHalfExtents = mgl64.Vec3{0.3, 0.25, 0.45}
