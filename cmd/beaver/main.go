package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Versifine/beaver/internal/body"
	"github.com/Versifine/beaver/internal/camera"
	"github.com/Versifine/beaver/internal/config"
	"github.com/Versifine/beaver/internal/debug"
	"github.com/Versifine/beaver/internal/effects"
	"github.com/Versifine/beaver/internal/event"
	"github.com/Versifine/beaver/internal/input"
	"github.com/Versifine/beaver/internal/locomotion"
	"github.com/Versifine/beaver/internal/logger"
	"github.com/Versifine/beaver/internal/metrics"
	"github.com/Versifine/beaver/internal/sim"
	"github.com/Versifine/beaver/internal/surface"
	"github.com/Versifine/beaver/internal/world"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	path := defaultConfigPath
	if p := os.Getenv("BEAVER_CONFIG"); p != "" {
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("Failed to load config", "path", path, "error", err)
		os.Exit(1)
	}

	out, closeLog, err := logOutput(cfg.Logging.File)
	if err != nil {
		slog.Error("Failed to open log file", "error", err)
		os.Exit(1)
	}
	defer closeLog()
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: out,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, cfg); err != nil {
		slog.Error("Simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stop context.CancelFunc, cfg *config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder, err := metrics.New(reg)
	if err != nil {
		return err
	}
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, reg); err != nil {
				slog.Error("Metrics endpoint failed", "error", err)
			}
		}()
	}

	tuning, err := cfg.Locomotion.Tuning()
	if err != nil {
		return fmt.Errorf("locomotion tuning: %w", err)
	}
	pondCfg, err := cfg.Pond.World(cfg.Surface.Height, tuning.WaterTag)
	if err != nil {
		return fmt.Errorf("pond: %w", err)
	}
	scene, err := world.BuildPond(pondCfg)
	if err != nil {
		return err
	}

	var (
		ref   surface.Reference
		clock sim.Advancer
	)
	switch cfg.Surface.Kind {
	case "static":
		ref = surface.Static(cfg.Surface.Height)
	case "wave":
		wave := surface.NewWave(cfg.Surface.Height, cfg.Surface.Amplitude, cfg.Surface.Frequency, cfg.Surface.Seed)
		ref, clock = wave, wave
	}

	bus := event.NewBus()
	recorder.Attach(bus)
	logEvents(bus)

	b := body.New(scene.Spawn, 0, scene.Grid)
	controller := locomotion.NewController(b, surface.NewOracle(ref, cfg.Surface.Offset), tuning,
		locomotion.WithBus(bus),
		locomotion.WithLogger(logger.With("locomotion")),
	)

	rig, err := newRig(cfg.Camera, scene.Spawn)
	if err != nil {
		return err
	}

	splasher := effects.NewSplasher(cfg.Splash.Effects(), b.ID(), controller, bus)
	splasher.Attach(bus)

	opts := []sim.Option{
		sim.WithTickRate(cfg.Sim.TickRate),
		sim.WithFrameRate(cfg.Sim.FrameRate),
		sim.WithMaxSubsteps(cfg.Sim.MaxSubsteps),
		sim.WithTracker(world.NewTracker(controller, scene.Volumes...)),
		sim.WithCamera(rig),
		sim.WithSplasher(splasher),
		sim.WithRecorder(recorder),
		sim.WithLogger(logger.With("sim")),
	}
	if clock != nil {
		opts = append(opts, sim.WithClock(clock))
	}

	if !cfg.Sim.Interactive {
		script := demoScript()
		simulation := sim.New(controller, append(opts, sim.WithScript(script))...)
		slog.Info("Running scripted demo", "duration", cfg.Sim.Duration)
		simulation.RunFor(cfg.Sim.Duration)
		st := simulation.Status()
		slog.Info("Demo finished",
			"mode", st.Mode.String(),
			"position", st.Position,
			"depth", st.Depth,
			"ticks", st.Ticks,
			"splashes", splasher.Count(),
			"script_done", script.Done(),
		)
		return nil
	}

	simulation := sim.New(controller, opts...)
	console := debug.NewConsole(simulation, stop)
	simulation.BindSource(console)
	simulation.BindPointer(console)

	go func() {
		if err := simulation.Run(ctx); err != nil {
			slog.Error("Simulation loop failed", "error", err)
		}
	}()
	err = console.Start(ctx)
	stop()
	return err
}

func newRig(cfg config.CameraConfig, spawn mgl64.Vec3) (camera.Rig, error) {
	if cfg.Rig == "follow" {
		follow, err := cfg.Follow()
		if err != nil {
			return nil, err
		}
		return camera.NewFollow(follow), nil
	}
	return camera.NewOrbit(cfg.Orbit(), spawn, 0, cfg.InitialPitch), nil
}

// demoScript walks into the pond, dives to the floor of the allowed range,
// surfaces, swims a loop and climbs back out.
func demoScript() *input.Script {
	forward := mgl64.Vec2{0, 1}
	return input.NewScript(
		input.Step{Duration: 2 * time.Second, State: input.State{Move: forward}},
		input.Step{Duration: 2 * time.Second, State: input.State{Move: forward, Dive: true}},
		input.Step{Duration: time.Second, State: input.State{Move: mgl64.Vec2{1, 0}}},
		input.Step{Duration: 2 * time.Second, State: input.State{Ascend: true}},
		input.Step{Duration: 1500 * time.Millisecond, State: input.State{Move: mgl64.Vec2{-1, 0}}},
		input.Step{Duration: 3500 * time.Millisecond, State: input.State{Move: mgl64.Vec2{0, -1}}},
	)
}

func logEvents(bus *event.Bus) {
	bus.Subscribe(event.ModeChangedEvent, func(raw any) {
		if evt, ok := raw.(*event.ModeChanged); ok {
			slog.Info("Mode changed", "from", evt.From, "to", evt.To, "position", evt.Position)
		}
	})
	bus.Subscribe(event.SplashEvent, func(raw any) {
		if evt, ok := raw.(*event.Splash); ok {
			slog.Info("Splash", "position", evt.Position, "flat_speed", evt.FlatSpeed, "forced", evt.Forced)
		}
	})
}

func logOutput(file string) (io.Writer, func(), error) {
	if file == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", file, err)
	}
	return f, func() { _ = f.Close() }, nil
}
