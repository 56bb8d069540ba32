package sim

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/beaver/internal/camera"
	"github.com/Versifine/beaver/internal/effects"
	"github.com/Versifine/beaver/internal/input"
	"github.com/Versifine/beaver/internal/locomotion"
	"github.com/Versifine/beaver/internal/metrics"
	"github.com/Versifine/beaver/internal/world"
)

const (
	defaultTickRate    = 50
	defaultFrameRate   = 60
	defaultMaxSubsteps = 5
)

// Advancer is anything that moves with simulated time, such as a wave
// surface or a scripted input source.
type Advancer interface {
	Advance(dt float64)
}

// PointerSource supplies camera pointer input once per frame.
type PointerSource interface {
	SamplePointer() camera.PointerInput
}

// Status is a consistent snapshot for display.
type Status struct {
	Mode       locomotion.Mode
	Enabled    bool
	InWater    bool
	Position   mgl64.Vec3
	Yaw        float64
	FlatSpeed  float64
	SurfaceY   float64
	Depth      float64
	Camera     camera.Pose
	Ticks      uint64
	Frames     uint64
	SimSeconds float64
}

// Simulation runs locomotion at a fixed tick rate and the camera once per
// frame. All state is guarded by one mutex so the console can read a status
// snapshot and issue commands while Run drives frames.
type Simulation struct {
	mu sync.Mutex

	tickDt      float64
	frameRate   float64
	maxSubsteps int
	accumulator float64

	controller *locomotion.Controller
	tracker    *world.Tracker
	rig        camera.Rig
	splasher   *effects.Splasher
	recorder   *metrics.Recorder
	pointer    PointerSource
	clocks     []Advancer
	script     *input.Script

	ticks   uint64
	frames  uint64
	elapsed float64
	log     *slog.Logger
}

type Option func(*Simulation)

func WithTickRate(hz float64) Option {
	return func(s *Simulation) {
		if hz > 0 {
			s.tickDt = 1 / hz
		}
	}
}

func WithFrameRate(hz float64) Option {
	return func(s *Simulation) {
		if hz > 0 {
			s.frameRate = hz
		}
	}
}

func WithMaxSubsteps(n int) Option {
	return func(s *Simulation) {
		if n > 0 {
			s.maxSubsteps = n
		}
	}
}

func WithTracker(t *world.Tracker) Option {
	return func(s *Simulation) { s.tracker = t }
}

// WithCamera installs the rig and binds it as the controller's steering basis.
func WithCamera(rig camera.Rig) Option {
	return func(s *Simulation) { s.rig = rig }
}

func WithSplasher(sp *effects.Splasher) Option {
	return func(s *Simulation) { s.splasher = sp }
}

func WithRecorder(r *metrics.Recorder) Option {
	return func(s *Simulation) { s.recorder = r }
}

func WithPointer(p PointerSource) Option {
	return func(s *Simulation) { s.pointer = p }
}

// WithClock adds something advanced by dt at the start of every tick.
func WithClock(a Advancer) Option {
	return func(s *Simulation) { s.clocks = append(s.clocks, a) }
}

// WithScript drives the controller from a scripted input sequence.
func WithScript(sc *input.Script) Option {
	return func(s *Simulation) { s.script = sc }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

func New(controller *locomotion.Controller, opts ...Option) *Simulation {
	s := &Simulation{
		tickDt:      1.0 / defaultTickRate,
		frameRate:   defaultFrameRate,
		maxSubsteps: defaultMaxSubsteps,
		controller:  controller,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rig != nil {
		controller.BindBasis(s.rig)
	}
	if s.script != nil {
		controller.BindSource(s.script)
	}
	return s
}

// Frame advances the simulation by frameDt seconds of wall time: zero or
// more fixed ticks, then one camera update. It returns the number of ticks
// run. Time beyond MaxSubsteps ticks is dropped.
func (s *Simulation) Frame(frameDt float64, pointer camera.PointerInput) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if frameDt < 0 || math.IsNaN(frameDt) {
		frameDt = 0
	}
	s.accumulator += frameDt

	n := 0
	for s.accumulator >= s.tickDt && n < s.maxSubsteps {
		s.tick()
		s.accumulator -= s.tickDt
		n++
	}
	if s.accumulator >= s.tickDt {
		dropped := s.accumulator - math.Mod(s.accumulator, s.tickDt)
		s.log.Debug("Simulation behind, dropping time", "dropped_seconds", dropped)
		s.accumulator -= dropped
	}

	if s.rig != nil {
		b := s.controller.Body()
		s.rig.Track(frameDt, b.Position(), b.Rotation(), pointer)
	}
	s.frames++
	return n
}

func (s *Simulation) tick() {
	dt := s.tickDt
	for _, c := range s.clocks {
		c.Advance(dt)
	}
	if s.tracker != nil {
		s.tracker.Update(s.controller.Body().Bounds())
	}

	s.controller.Update(dt)
	if s.script != nil {
		s.script.Advance(time.Duration(dt * float64(time.Second)))
	}

	if s.splasher != nil {
		s.splasher.Observe(dt)
	}
	s.recorder.ObserveTick(s.controller.Depth())
	s.ticks++
	s.elapsed += dt
}

// Run drives frames from a ticker at the frame rate until ctx is cancelled.
func (s *Simulation) Run(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) / s.frameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("Simulation started", "tick_hz", 1/s.tickDt, "frame_hz", s.frameRate)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Simulation stopped", "ticks", s.Ticks())
			return nil
		case now := <-ticker.C:
			s.Frame(now.Sub(last).Seconds(), s.samplePointer())
			last = now
		}
	}
}

// RunFor advances d of simulated time in whole frames without a wall clock.
func (s *Simulation) RunFor(d time.Duration) {
	frameDt := 1 / s.frameRate
	frames := int(math.Ceil(d.Seconds() * s.frameRate))
	for i := 0; i < frames; i++ {
		s.Frame(frameDt, s.samplePointer())
	}
}

func (s *Simulation) samplePointer() camera.PointerInput {
	s.mu.Lock()
	p := s.pointer
	s.mu.Unlock()
	if p == nil {
		return camera.PointerInput{}
	}
	return p.SamplePointer()
}

// Pause disables locomotion; ticks keep running so containment stays current.
func (s *Simulation) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.Disable()
	s.log.Info("Locomotion paused")
}

func (s *Simulation) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.Enable()
	s.log.Info("Locomotion resumed")
}

func (s *Simulation) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.controller
	pos, yaw := c.Pose()
	st := Status{
		Mode:       c.Mode(),
		Enabled:    c.Enabled(),
		InWater:    c.InWater(),
		Position:   pos,
		Yaw:        yaw,
		FlatSpeed:  c.FlatSpeed(),
		SurfaceY:   c.SurfaceY(),
		Depth:      c.Depth(),
		Ticks:      s.ticks,
		Frames:     s.frames,
		SimSeconds: s.elapsed,
	}
	if s.rig != nil {
		st.Camera = s.rig.Pose()
	}
	return st
}

func (s *Simulation) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

func (s *Simulation) TickInterval() float64 {
	return s.tickDt
}

func (s *Simulation) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// BindPointer installs the pointer source after construction, for sources
// that themselves need the simulation.
func (s *Simulation) BindPointer(p PointerSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointer = p
}

// BindSource installs the locomotion input source.
func (s *Simulation) BindSource(src input.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.BindSource(src)
}
