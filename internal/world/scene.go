package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/beaver/internal/physics"
)

// PondConfig describes the sandbox: a flat floor with its top face at y=0
// and a rectangular basin of water cut into it.
type PondConfig struct {
	GroundHalfSize int
	// PondMin and PondMax are inclusive (x, z) cell bounds of the basin.
	PondMin  [2]int
	PondMax  [2]int
	Depth    int
	SurfaceY float64
	Tag      string
}

func DefaultPond() PondConfig {
	return PondConfig{
		GroundHalfSize: 24,
		PondMin:        [2]int{-8, 6},
		PondMax:        [2]int{8, 22},
		Depth:          6,
		SurfaceY:       0.4,
		Tag:            "Water",
	}
}

func (c PondConfig) Validate() error {
	if c.GroundHalfSize <= 0 {
		return fmt.Errorf("ground_half_size must be > 0, got %d", c.GroundHalfSize)
	}
	if c.Depth <= 0 {
		return fmt.Errorf("depth must be > 0, got %d", c.Depth)
	}
	for i, axis := range []string{"x", "z"} {
		if c.PondMin[i] > c.PondMax[i] {
			return fmt.Errorf("pond %s range inverted: %d > %d", axis, c.PondMin[i], c.PondMax[i])
		}
		if c.PondMin[i] < -c.GroundHalfSize || c.PondMax[i] > c.GroundHalfSize {
			return fmt.Errorf("pond %s range [%d, %d] outside ground", axis, c.PondMin[i], c.PondMax[i])
		}
	}
	if c.Tag == "" {
		return fmt.Errorf("tag is empty")
	}
	return nil
}

type Scene struct {
	Grid     *Grid
	Volumes  []Volume
	Spawn    mgl64.Vec3
	SurfaceY float64
}

func BuildPond(cfg PondConfig) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pond: %w", err)
	}

	g := NewGrid()
	h := cfg.GroundHalfSize
	g.Fill([3]int{-h, -1, -h}, [3]int{h, -1, h}, true)

	lo := [3]int{cfg.PondMin[0], -cfg.Depth, cfg.PondMin[1]}
	hi := [3]int{cfg.PondMax[0], -1, cfg.PondMax[1]}
	g.Fill(lo, hi, false)
	g.Fill([3]int{lo[0], -cfg.Depth - 1, lo[2]}, [3]int{hi[0], -cfg.Depth - 1, hi[2]}, true)

	water := Volume{
		Tag: cfg.Tag,
		Bounds: physics.AABB{
			Min: mgl64.Vec3{float64(lo[0]), float64(-cfg.Depth), float64(lo[2])},
			Max: mgl64.Vec3{float64(hi[0] + 1), cfg.SurfaceY, float64(hi[2] + 1)},
		},
	}

	return &Scene{
		Grid:     g,
		Volumes:  []Volume{water},
		Spawn:    mgl64.Vec3{0, physics.ActorHalfExtents.Y(), 0},
		SurfaceY: cfg.SurfaceY,
	}, nil
}
