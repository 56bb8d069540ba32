package locomotion

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/beaver/internal/body"
	"github.com/Versifine/beaver/internal/event"
	"github.com/Versifine/beaver/internal/input"
	"github.com/Versifine/beaver/internal/mathutil"
	"github.com/Versifine/beaver/internal/surface"
)

// Basis supplies a horizontal steering basis, typically a camera's facing.
type Basis interface {
	SteeringBasis() (forward, right mgl64.Vec3, ok bool)
}

// Controller is the locomotion state machine for one actor. It is driven
// from a single simulation goroutine and is not safe for concurrent use; the
// body it owns may be read from elsewhere.
type Controller struct {
	body    *body.Body
	surface *surface.Oracle
	tuning  Tuning
	basis   Basis
	source  input.Source
	bus     *event.Bus
	log     *slog.Logger

	mode     Mode
	inWater  bool
	enabled  bool
	prevDive bool

	flatSpeed       float64
	surfaceY        float64
	surfaceDistance float64
}

type Option func(*Controller)

func WithBus(bus *event.Bus) Option {
	return func(c *Controller) {
		c.bus = bus
	}
}

func WithSource(src input.Source) Option {
	return func(c *Controller) {
		c.source = src
	}
}

func WithBasis(b Basis) Option {
	return func(c *Controller) {
		c.basis = b
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func NewController(b *body.Body, oracle *surface.Oracle, tuning Tuning, opts ...Option) *Controller {
	c := &Controller{
		body:    b,
		surface: oracle,
		tuning:  tuning,
		log:     slog.Default(),
		mode:    Ground,
		enabled: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("actor", b.ID())
	c.applyProperties()
	y := b.Position()[1]
	c.surfaceY = oracle.Height(y)
	c.surfaceDistance = y - c.surfaceY
	return c
}

// BindBasis late-binds the steering basis. A nil basis restores world axes.
func (c *Controller) BindBasis(b Basis) {
	c.basis = b
}

func (c *Controller) BindSource(src input.Source) {
	c.source = src
}

// EnterWater records entry into a containment region. Regions whose tag is
// not the configured water tag are ignored.
func (c *Controller) EnterWater(tag string) {
	if tag != c.tuning.WaterTag || c.inWater {
		return
	}
	c.inWater = true
	pos := c.body.Position()
	c.log.Debug("Entered water", "tag", tag, "position", pos)
	c.bus.Publish(event.WaterEnteredEvent, &event.WaterEntered{Actor: c.body.ID(), Tag: tag, Position: pos})
}

func (c *Controller) ExitWater(tag string) {
	if tag != c.tuning.WaterTag || !c.inWater {
		return
	}
	c.inWater = false
	pos := c.body.Position()
	c.log.Debug("Exited water", "tag", tag, "position", pos)
	c.bus.Publish(event.WaterExitedEvent, &event.WaterExited{Actor: c.body.ID(), Tag: tag, Position: pos})
}

// Update samples the bound input source once and runs one tick with it.
func (c *Controller) Update(dt float64) {
	var in input.State
	if c.source != nil {
		in = c.source.Sample()
	}
	c.Tick(dt, in)
}

// Tick evaluates the transition table and then the resulting mode's motion
// policy, and integrates the body by dt.
func (c *Controller) Tick(dt float64, in input.State) {
	if !c.enabled || dt <= 0 {
		return
	}
	in = input.Normalize(in)

	start := c.body.Position()
	surfaceY := c.surface.Height(start[1])

	divePressed := in.Dive && !c.prevDive
	c.prevDive = in.Dive

	c.setMode(nextMode(transitionInput{
		mode:        c.mode,
		inWater:     c.inWater,
		dive:        in.Dive,
		divePressed: divePressed,
		y:           start[1],
		surfaceY:    surfaceY,
	}, c.tuning))

	forward, right := c.steeringBasis()
	motion := policyFor(c.mode).motion(frame{
		dt:         dt,
		input:      in,
		position:   start,
		yaw:        c.body.Yaw(),
		surfaceY:   surfaceY,
		hasSurface: c.surface.HasReference(),
		forward:    forward,
		right:      right,
		tuning:     c.tuning,
	})

	c.applyProperties()
	c.body.MovePosition(motion.Translation)
	if motion.Turn != 0 {
		c.body.MoveRotation(mathutil.YawRotation(motion.Turn))
	}
	c.body.Step(dt)

	end := c.body.Position()
	c.flatSpeed = mathutil.Flat(end.Sub(start)).Len() / dt
	c.surfaceY = c.surface.Height(end[1])
	c.surfaceDistance = end[1] - c.surfaceY
}

func (c *Controller) setMode(next Mode) {
	if next == c.mode {
		return
	}
	prev := c.mode
	c.mode = next
	if next == Submerged {
		c.body.ZeroVerticalVelocity()
	}
	c.applyProperties()

	pos := c.body.Position()
	c.log.Debug("Locomotion mode changed", "from", prev.String(), "to", next.String(), "position", pos)
	c.bus.Publish(event.ModeChangedEvent, &event.ModeChanged{
		Actor:    c.body.ID(),
		From:     prev.String(),
		To:       next.String(),
		Position: pos,
	})
}

func (c *Controller) applyProperties() {
	p := policyFor(c.mode)
	c.body.SetPhysicalProperties(p.gravity, p.drag(c.tuning))
}

func (c *Controller) steeringBasis() (forward, right mgl64.Vec3) {
	if c.basis != nil {
		if f, r, ok := c.basis.SteeringBasis(); ok {
			f, r = mathutil.Flat(f), mathutil.Flat(r)
			if f.Len() > 1e-6 && r.Len() > 1e-6 {
				return f.Normalize(), r.Normalize()
			}
		}
	}
	return mathutil.Forward, mathutil.Right
}

// Disable stops ticking and drops cached input so a modifier held across
// the disable cannot stay stuck.
func (c *Controller) Disable() {
	c.enabled = false
	c.resetInput()
}

func (c *Controller) Enable() {
	if c.enabled {
		return
	}
	c.enabled = true
	c.resetInput()
}

func (c *Controller) resetInput() {
	c.prevDive = false
	if r, ok := c.source.(input.Resetter); ok {
		r.Reset()
	}
}

func (c *Controller) Enabled() bool { return c.enabled }

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) InWater() bool { return c.inWater }

// FlatSpeed is the horizontal speed over the last tick.
func (c *Controller) FlatSpeed() float64 { return c.flatSpeed }

// SurfaceY is the surface height observed at the end of the last tick.
func (c *Controller) SurfaceY() float64 { return c.surfaceY }

// SurfaceDistance is the signed vertical distance y - surfaceY after the
// last tick; negative below the surface.
func (c *Controller) SurfaceDistance() float64 { return c.surfaceDistance }

func (c *Controller) Body() *body.Body { return c.body }

func (c *Controller) Tuning() Tuning { return c.tuning }

// Pose returns the actor position and heading in degrees.
func (c *Controller) Pose() (mgl64.Vec3, float64) {
	return c.body.Position(), c.body.Yaw()
}

// Depth is how far below the surface the actor is; zero at or above it.
func (c *Controller) Depth() float64 {
	return math.Max(0, -c.surfaceDistance)
}
