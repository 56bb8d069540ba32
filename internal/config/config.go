package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/Versifine/beaver/internal/camera"
	"github.com/Versifine/beaver/internal/effects"
	"github.com/Versifine/beaver/internal/locomotion"
	"github.com/Versifine/beaver/internal/world"
)

// EnvPrefix prefixes every environment override, e.g. BEAVER_LOG_LEVEL.
const EnvPrefix = "BEAVER_"

type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envPrefix:"LOG_"`
	Sim        SimConfig        `yaml:"sim" envPrefix:"SIM_"`
	Locomotion LocomotionConfig `yaml:"locomotion" envPrefix:"LOCOMOTION_"`
	Camera     CameraConfig     `yaml:"camera" envPrefix:"CAMERA_"`
	Surface    SurfaceConfig    `yaml:"surface" envPrefix:"SURFACE_"`
	Splash     SplashConfig     `yaml:"splash" envPrefix:"SPLASH_"`
	Pond       PondConfig       `yaml:"pond" envPrefix:"POND_"`
	Metrics    MetricsConfig    `yaml:"metrics" envPrefix:"METRICS_"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
	File   string `yaml:"file" env:"FILE"`
}

type SimConfig struct {
	TickRate    float64       `yaml:"tick_rate" env:"TICK_RATE"`
	FrameRate   float64       `yaml:"frame_rate" env:"FRAME_RATE"`
	MaxSubsteps int           `yaml:"max_substeps" env:"MAX_SUBSTEPS"`
	Interactive bool          `yaml:"interactive" env:"INTERACTIVE"`
	Duration    time.Duration `yaml:"duration" env:"DURATION"`
}

type LocomotionConfig struct {
	GroundSpeed    float64 `yaml:"ground_speed" env:"GROUND_SPEED"`
	GroundTurnRate float64 `yaml:"ground_turn_rate" env:"GROUND_TURN_RATE"`

	SwimSpeed         float64 `yaml:"swim_speed" env:"SWIM_SPEED"`
	SwimTurnRate      float64 `yaml:"swim_turn_rate" env:"SWIM_TURN_RATE"`
	SurfaceFollowRate float64 `yaml:"surface_follow_rate" env:"SURFACE_FOLLOW_RATE"`
	SurfaceOffset     float64 `yaml:"surface_offset" env:"SURFACE_OFFSET"`
	SwimDrag          float64 `yaml:"swim_drag" env:"SWIM_DRAG"`

	SubmergedSpeed         float64 `yaml:"submerged_speed" env:"SUBMERGED_SPEED"`
	SubmergedTurnRate      float64 `yaml:"submerged_turn_rate" env:"SUBMERGED_TURN_RATE"`
	SubmergedVerticalSpeed float64 `yaml:"submerged_vertical_speed" env:"SUBMERGED_VERTICAL_SPEED"`
	SubmergedDrag          float64 `yaml:"submerged_drag" env:"SUBMERGED_DRAG"`
	MaxDepth               float64 `yaml:"max_depth" env:"MAX_DEPTH"`
	AllowAboveSurface      float64 `yaml:"allow_above_surface" env:"ALLOW_ABOVE_SURFACE"`
	ExitDistance           float64 `yaml:"exit_distance" env:"EXIT_DISTANCE"`

	WaterTag   string `yaml:"water_tag" env:"WATER_TAG"`
	HoldToDive bool   `yaml:"hold_to_dive" env:"HOLD_TO_DIVE"`
	Steering   string `yaml:"steering" env:"STEERING"`
}

type CameraConfig struct {
	// Rig is "orbit" or "follow".
	Rig string `yaml:"rig" env:"RIG"`

	YawSpeed       float64 `yaml:"yaw_speed" env:"YAW_SPEED"`
	PitchSpeed     float64 `yaml:"pitch_speed" env:"PITCH_SPEED"`
	MinPitch       float64 `yaml:"min_pitch" env:"MIN_PITCH"`
	MaxPitch       float64 `yaml:"max_pitch" env:"MAX_PITCH"`
	InitialPitch   float64 `yaml:"initial_pitch" env:"INITIAL_PITCH"`
	Distance       float64 `yaml:"distance" env:"DISTANCE"`
	MinDistance    float64 `yaml:"min_distance" env:"MIN_DISTANCE"`
	MaxDistance    float64 `yaml:"max_distance" env:"MAX_DISTANCE"`
	ZoomSpeed      float64 `yaml:"zoom_speed" env:"ZOOM_SPEED"`
	ZoomSmooth     float64 `yaml:"zoom_smooth" env:"ZOOM_SMOOTH"`
	PositionSmooth float64 `yaml:"position_smooth" env:"POSITION_SMOOTH"`
	RequireButton  bool    `yaml:"require_button" env:"REQUIRE_BUTTON"`
	LockCursor     bool    `yaml:"lock_cursor" env:"LOCK_CURSOR"`

	FollowOffset []float64 `yaml:"follow_offset" env:"FOLLOW_OFFSET" envSeparator:","`
	FollowLocal  bool      `yaml:"follow_local" env:"FOLLOW_LOCAL"`
}

type SurfaceConfig struct {
	// Kind is "static", "wave" or "none".
	Kind      string  `yaml:"kind" env:"KIND"`
	Height    float64 `yaml:"height" env:"HEIGHT"`
	Offset    float64 `yaml:"offset" env:"OFFSET"`
	Amplitude float64 `yaml:"amplitude" env:"AMPLITUDE"`
	Frequency float64 `yaml:"frequency" env:"FREQUENCY"`
	Seed      int64   `yaml:"seed" env:"SEED"`
}

type SplashConfig struct {
	MinSpeed           float64 `yaml:"min_speed" env:"MIN_SPEED"`
	Cooldown           float64 `yaml:"cooldown" env:"COOLDOWN"`
	SpawnOffset        float64 `yaml:"spawn_offset" env:"SPAWN_OFFSET"`
	MaxSurfaceDistance float64 `yaml:"max_surface_distance" env:"MAX_SURFACE_DISTANCE"`
}

type PondConfig struct {
	GroundHalfSize int   `yaml:"ground_half_size" env:"GROUND_HALF_SIZE"`
	Min            []int `yaml:"min" env:"MIN" envSeparator:","`
	Max            []int `yaml:"max" env:"MAX" envSeparator:","`
	Depth          int   `yaml:"depth" env:"DEPTH"`
}

type MetricsConfig struct {
	// Addr is the listen address of /metrics; empty disables the endpoint.
	Addr string `yaml:"addr" env:"ADDR"`
}

func Default() *Config {
	tuning := locomotion.DefaultTuning()
	orbit := camera.DefaultOrbitConfig()
	follow := camera.DefaultFollowConfig()
	splash := effects.DefaultSplashConfig()
	pond := world.DefaultPond()

	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Sim: SimConfig{
			TickRate:    50,
			FrameRate:   60,
			MaxSubsteps: 5,
			Interactive: true,
			Duration:    12 * time.Second,
		},
		Locomotion: LocomotionConfig{
			GroundSpeed:            tuning.GroundSpeed,
			GroundTurnRate:         tuning.GroundTurnRate,
			SwimSpeed:              tuning.SwimSpeed,
			SwimTurnRate:           tuning.SwimTurnRate,
			SurfaceFollowRate:      tuning.SurfaceFollowRate,
			SurfaceOffset:          tuning.SurfaceOffset,
			SwimDrag:               tuning.SwimDrag,
			SubmergedSpeed:         tuning.SubmergedSpeed,
			SubmergedTurnRate:      tuning.SubmergedTurnRate,
			SubmergedVerticalSpeed: tuning.SubmergedVerticalSpeed,
			SubmergedDrag:          tuning.SubmergedDrag,
			MaxDepth:               tuning.MaxDepth,
			AllowAboveSurface:      tuning.AllowAboveSurface,
			ExitDistance:           tuning.ExitDistance,
			WaterTag:               tuning.WaterTag,
			HoldToDive:             tuning.HoldToDive,
			Steering:               tuning.Steering.String(),
		},
		Camera: CameraConfig{
			Rig:            "orbit",
			YawSpeed:       orbit.YawSpeed,
			PitchSpeed:     orbit.PitchSpeed,
			MinPitch:       orbit.MinPitch,
			MaxPitch:       orbit.MaxPitch,
			InitialPitch:   20,
			Distance:       orbit.Distance,
			MinDistance:    orbit.MinDistance,
			MaxDistance:    orbit.MaxDistance,
			ZoomSpeed:      orbit.ZoomSpeed,
			ZoomSmooth:     orbit.ZoomSmooth,
			PositionSmooth: orbit.PositionSmooth,
			RequireButton:  orbit.RequireButton,
			LockCursor:     orbit.LockCursor,
			FollowOffset:   []float64{follow.Offset.X(), follow.Offset.Y(), follow.Offset.Z()},
			FollowLocal:    follow.LocalOffset,
		},
		Surface: SurfaceConfig{
			Kind:      "wave",
			Height:    pond.SurfaceY,
			Amplitude: 0.05,
			Frequency: 0.5,
			Seed:      1,
		},
		Splash: SplashConfig{
			MinSpeed:           splash.MinSpeed,
			Cooldown:           splash.Cooldown,
			SpawnOffset:        splash.SpawnOffset,
			MaxSurfaceDistance: splash.MaxSurfaceDistance,
		},
		Pond: PondConfig{
			GroundHalfSize: pond.GroundHalfSize,
			Min:            []int{pond.PondMin[0], pond.PondMin[1]},
			Max:            []int{pond.PondMax[0], pond.PondMax[1]},
			Depth:          pond.Depth,
		},
	}
}

// Load reads the YAML file at path over Default(), applies BEAVER_*
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not one of console, text, json", c.Logging.Format))
	}

	if c.Sim.TickRate <= 0 || c.Sim.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("sim rates must be > 0, got tick_rate=%v frame_rate=%v", c.Sim.TickRate, c.Sim.FrameRate))
	}
	if c.Sim.MaxSubsteps <= 0 {
		errs = append(errs, fmt.Errorf("sim.max_substeps must be > 0, got %d", c.Sim.MaxSubsteps))
	}
	if !c.Sim.Interactive && c.Sim.Duration <= 0 {
		errs = append(errs, errors.New("sim.duration must be > 0 for headless runs"))
	}

	if tuning, err := c.Locomotion.Tuning(); err != nil {
		errs = append(errs, fmt.Errorf("locomotion: %w", err))
	} else if err := tuning.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("locomotion: %w", err))
	}

	switch c.Camera.Rig {
	case "orbit":
		if err := c.Camera.Orbit().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("camera: %w", err))
		}
	case "follow":
		if _, err := c.Camera.Follow(); err != nil {
			errs = append(errs, fmt.Errorf("camera: %w", err))
		}
	default:
		errs = append(errs, fmt.Errorf("camera.rig %q is not one of orbit, follow", c.Camera.Rig))
	}

	switch c.Surface.Kind {
	case "static", "none":
	case "wave":
		if c.Surface.Amplitude < 0 || c.Surface.Frequency <= 0 {
			errs = append(errs, errors.New("surface: wave needs amplitude >= 0 and frequency > 0"))
		}
	default:
		errs = append(errs, fmt.Errorf("surface.kind %q is not one of static, wave, none", c.Surface.Kind))
	}

	if err := c.Splash.Effects().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("splash: %w", err))
	}
	if pond, err := c.Pond.World(c.Surface.Height, c.Locomotion.WaterTag); err != nil {
		errs = append(errs, fmt.Errorf("pond: %w", err))
	} else if err := pond.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("pond: %w", err))
	}
	return errors.Join(errs...)
}

func (c LocomotionConfig) Tuning() (locomotion.Tuning, error) {
	steering, err := locomotion.ParseSteering(c.Steering)
	if err != nil {
		return locomotion.Tuning{}, err
	}
	return locomotion.Tuning{
		GroundSpeed:            c.GroundSpeed,
		GroundTurnRate:         c.GroundTurnRate,
		SwimSpeed:              c.SwimSpeed,
		SwimTurnRate:           c.SwimTurnRate,
		SurfaceFollowRate:      c.SurfaceFollowRate,
		SurfaceOffset:          c.SurfaceOffset,
		SwimDrag:               c.SwimDrag,
		SubmergedSpeed:         c.SubmergedSpeed,
		SubmergedTurnRate:      c.SubmergedTurnRate,
		SubmergedVerticalSpeed: c.SubmergedVerticalSpeed,
		SubmergedDrag:          c.SubmergedDrag,
		MaxDepth:               c.MaxDepth,
		AllowAboveSurface:      c.AllowAboveSurface,
		ExitDistance:           c.ExitDistance,
		WaterTag:               c.WaterTag,
		HoldToDive:             c.HoldToDive,
		Steering:               steering,
	}, nil
}

func (c CameraConfig) Orbit() camera.OrbitConfig {
	return camera.OrbitConfig{
		YawSpeed:       c.YawSpeed,
		PitchSpeed:     c.PitchSpeed,
		MinPitch:       c.MinPitch,
		MaxPitch:       c.MaxPitch,
		Distance:       c.Distance,
		MinDistance:    c.MinDistance,
		MaxDistance:    c.MaxDistance,
		ZoomSpeed:      c.ZoomSpeed,
		ZoomSmooth:     c.ZoomSmooth,
		PositionSmooth: c.PositionSmooth,
		RequireButton:  c.RequireButton,
		LockCursor:     c.LockCursor,
	}
}

func (c CameraConfig) Follow() (camera.FollowConfig, error) {
	if len(c.FollowOffset) != 3 {
		return camera.FollowConfig{}, fmt.Errorf("follow_offset needs 3 components, got %d", len(c.FollowOffset))
	}
	return camera.FollowConfig{
		Offset:      mgl64.Vec3{c.FollowOffset[0], c.FollowOffset[1], c.FollowOffset[2]},
		LocalOffset: c.FollowLocal,
	}, nil
}

func (c SplashConfig) Effects() effects.SplashConfig {
	return effects.SplashConfig{
		MinSpeed:           c.MinSpeed,
		Cooldown:           c.Cooldown,
		SpawnOffset:        c.SpawnOffset,
		MaxSurfaceDistance: c.MaxSurfaceDistance,
	}
}

// World builds the scene description; the water volume tops out at surfaceY
// and carries tag.
func (c PondConfig) World(surfaceY float64, tag string) (world.PondConfig, error) {
	if len(c.Min) != 2 || len(c.Max) != 2 {
		return world.PondConfig{}, fmt.Errorf("min and max need 2 components (x, z), got %d and %d", len(c.Min), len(c.Max))
	}
	return world.PondConfig{
		GroundHalfSize: c.GroundHalfSize,
		PondMin:        [2]int{c.Min[0], c.Min[1]},
		PondMax:        [2]int{c.Max[0], c.Max[1]},
		Depth:          c.Depth,
		SurfaceY:       surfaceY,
		Tag:            tag,
	}, nil
}
