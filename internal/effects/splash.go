package effects

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/Versifine/beaver/internal/event"
)

type SplashConfig struct {
	MinSpeed           float64
	Cooldown           float64
	SpawnOffset        float64
	MaxSurfaceDistance float64
}

func DefaultSplashConfig() SplashConfig {
	return SplashConfig{
		MinSpeed:           0.2,
		Cooldown:           0.12,
		SpawnOffset:        0.02,
		MaxSurfaceDistance: 0.35,
	}
}

func (c SplashConfig) Validate() error {
	var errs []error
	if c.MinSpeed < 0 {
		errs = append(errs, fmt.Errorf("min_speed must be >= 0, got %v", c.MinSpeed))
	}
	if c.Cooldown < 0 {
		errs = append(errs, fmt.Errorf("cooldown must be >= 0, got %v", c.Cooldown))
	}
	if c.MaxSurfaceDistance < 0 {
		errs = append(errs, errors.New("max_surface_distance must be >= 0"))
	}
	return errors.Join(errs...)
}

// Actor is the read-only view of a swimmer the splash policy needs.
type Actor interface {
	Pose() (mgl64.Vec3, float64)
	InWater() bool
	FlatSpeed() float64
	SurfaceY() float64
	SurfaceDistance() float64
}

// Splasher decides when a moving swimmer should throw up a splash. A splash
// is forced when the actor enters water; otherwise it needs enough flat speed,
// a position near the surface and an expired cooldown.
type Splasher struct {
	cfg      SplashConfig
	actorID  uuid.UUID
	actor    Actor
	bus      *event.Bus
	cooldown float64
	count    int
}

func NewSplasher(cfg SplashConfig, actorID uuid.UUID, actor Actor, bus *event.Bus) *Splasher {
	return &Splasher{cfg: cfg, actorID: actorID, actor: actor, bus: bus}
}

// Attach forces a splash whenever the tracked actor enters water.
func (s *Splasher) Attach(bus *event.Bus) {
	bus.Subscribe(event.WaterEnteredEvent, func(raw any) {
		evt, ok := raw.(*event.WaterEntered)
		if !ok || evt.Actor != s.actorID {
			return
		}
		s.try(evt.Position, true)
	})
}

// Observe runs once per physics tick after locomotion has moved the actor.
func (s *Splasher) Observe(dt float64) {
	if s.cooldown > 0 && dt > 0 {
		s.cooldown = math.Max(0, s.cooldown-dt)
	}
	if !s.actor.InWater() {
		return
	}
	if math.Abs(s.actor.SurfaceDistance()) > s.cfg.MaxSurfaceDistance {
		return
	}
	pos, _ := s.actor.Pose()
	s.try(pos, false)
}

func (s *Splasher) try(pos mgl64.Vec3, force bool) bool {
	if !force && s.cooldown > 0 {
		return false
	}
	speed := s.actor.FlatSpeed()
	if !force && speed < s.cfg.MinSpeed {
		return false
	}

	at := mgl64.Vec3{pos.X(), s.actor.SurfaceY() + s.cfg.SpawnOffset, pos.Z()}
	s.cooldown = s.cfg.Cooldown
	s.count++
	slog.Debug("Splash", "position", at, "flat_speed", speed, "forced", force)
	s.bus.Publish(event.SplashEvent, &event.Splash{
		Actor:     s.actorID,
		Position:  at,
		FlatSpeed: speed,
		Forced:    force,
	})
	return true
}

func (s *Splasher) Count() int {
	return s.count
}

func (s *Splasher) Cooldown() float64 {
	return s.cooldown
}
