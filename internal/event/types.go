package event

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const (
	ModeChangedEvent  = "locomotion.mode_changed"
	WaterEnteredEvent = "locomotion.water_entered"
	WaterExitedEvent  = "locomotion.water_exited"
	SplashEvent       = "effects.splash"
)

type ModeChanged struct {
	Actor    uuid.UUID
	From     string
	To       string
	Position mgl64.Vec3
}

type WaterEntered struct {
	Actor    uuid.UUID
	Tag      string
	Position mgl64.Vec3
}

type WaterExited struct {
	Actor    uuid.UUID
	Tag      string
	Position mgl64.Vec3
}

// Splash asks an effect system to spawn a splash at Position.
type Splash struct {
	Actor     uuid.UUID
	Position  mgl64.Vec3
	FlatSpeed float64
	Forced    bool
}
