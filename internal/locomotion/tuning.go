package locomotion

import (
	"errors"
	"fmt"
)

// Steering selects how the move axis maps to motion.
type Steering int

const (
	// SteeringDirectional projects the move axis onto the steering basis and
	// turns the actor toward the resulting direction.
	SteeringDirectional Steering = iota
	// SteeringTank turns with the x axis and moves along the facing with y.
	SteeringTank
)

func (s Steering) String() string {
	switch s {
	case SteeringDirectional:
		return "directional"
	case SteeringTank:
		return "tank"
	default:
		return "unknown"
	}
}

func ParseSteering(s string) (Steering, error) {
	switch s {
	case "", "directional":
		return SteeringDirectional, nil
	case "tank":
		return SteeringTank, nil
	default:
		return SteeringDirectional, fmt.Errorf("unknown steering %q", s)
	}
}

// Tuning holds every locomotion constant. Speeds are units/s, turn rates
// degrees/s, rates 1/s.
type Tuning struct {
	GroundSpeed    float64
	GroundTurnRate float64

	SwimSpeed         float64
	SwimTurnRate      float64
	SurfaceFollowRate float64
	SurfaceOffset     float64
	SwimDrag          float64

	SubmergedSpeed         float64
	SubmergedTurnRate      float64
	SubmergedVerticalSpeed float64
	SubmergedDrag          float64
	MaxDepth               float64
	AllowAboveSurface      float64

	// ExitDistance is the hysteresis band around the surface inside which a
	// released dive returns the actor to SurfaceSwim.
	ExitDistance float64

	WaterTag   string
	HoldToDive bool
	Steering   Steering
}

func DefaultTuning() Tuning {
	return Tuning{
		GroundSpeed:            5,
		GroundTurnRate:         180,
		SwimSpeed:              7,
		SwimTurnRate:           140,
		SurfaceFollowRate:      8,
		SurfaceOffset:          0,
		SwimDrag:               2.5,
		SubmergedSpeed:         6,
		SubmergedTurnRate:      140,
		SubmergedVerticalSpeed: 4,
		SubmergedDrag:          3.5,
		MaxDepth:               4,
		AllowAboveSurface:      0.05,
		ExitDistance:           0.35,
		WaterTag:               "Water",
		HoldToDive:             true,
		Steering:               SteeringDirectional,
	}
}

func (t Tuning) Validate() error {
	var errs []error
	positive := []struct {
		name  string
		value float64
	}{
		{"ground_turn_rate", t.GroundTurnRate},
		{"swim_turn_rate", t.SwimTurnRate},
		{"submerged_turn_rate", t.SubmergedTurnRate},
		{"surface_follow_rate", t.SurfaceFollowRate},
		{"exit_distance", t.ExitDistance},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", p.name, p.value))
		}
	}
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"ground_speed", t.GroundSpeed},
		{"swim_speed", t.SwimSpeed},
		{"submerged_speed", t.SubmergedSpeed},
		{"submerged_vertical_speed", t.SubmergedVerticalSpeed},
		{"swim_drag", t.SwimDrag},
		{"submerged_drag", t.SubmergedDrag},
		{"max_depth", t.MaxDepth},
		{"allow_above_surface", t.AllowAboveSurface},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %v", p.name, p.value))
		}
	}
	if t.WaterTag == "" {
		errs = append(errs, errors.New("water_tag must not be empty"))
	}
	return errors.Join(errs...)
}
