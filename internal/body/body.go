package body

import (
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/Versifine/beaver/internal/mathutil"
	"github.com/Versifine/beaver/internal/physics"
)

// Body is the actor's physical body. Pose changes only through queued
// relative moves that Step integrates; nothing assigns the pose directly.
type Body struct {
	id          uuid.UUID
	mu          sync.Mutex
	physics     physics.State
	pending     physics.Pending
	halfExtents mgl64.Vec3
	blockStore  physics.BlockStore
}

type Option func(*Body)

func WithHalfExtents(halfExtents mgl64.Vec3) Option {
	return func(b *Body) {
		b.halfExtents = halfExtents
	}
}

func New(initial mgl64.Vec3, yaw float64, blockStore physics.BlockStore, opts ...Option) *Body {
	b := &Body{
		id: uuid.New(),
		physics: physics.State{
			Position:       initial,
			Rotation:       mathutil.YawRotation(yaw),
			GravityEnabled: true,
		},
		pending:     physics.NoPending(),
		halfExtents: physics.ActorHalfExtents,
		blockStore:  blockStore,
	}
	for _, opt := range opts {
		opt(b)
	}
	slog.Debug("Body created", "actor", b.id, "position", initial, "yaw", yaw)
	return b
}

func (b *Body) ID() uuid.UUID {
	if b == nil {
		return uuid.Nil
	}
	return b.id
}

// MovePosition queues a translation for the next Step.
func (b *Body) MovePosition(delta mgl64.Vec3) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.pending.Translation = b.pending.Translation.Add(delta)
	b.mu.Unlock()
}

// MoveRotation queues a world-space rotation for the next Step.
func (b *Body) MoveRotation(delta mgl64.Quat) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.pending.Rotation = delta.Mul(b.pending.Rotation)
	b.mu.Unlock()
}

func (b *Body) SetPhysicalProperties(gravity bool, drag float64) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.physics.GravityEnabled = gravity
	b.physics.LinearDrag = drag
	b.mu.Unlock()
}

func (b *Body) ZeroVerticalVelocity() {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.physics.Velocity[1] = 0
	b.mu.Unlock()
}

// Step integrates queued moves, gravity and drag over dt.
func (b *Body) Step(dt float64) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	physics.Step(&b.physics, b.pending, dt, b.halfExtents, b.blockStore)
	b.pending = physics.NoPending()
}

func (b *Body) PhysicsState() physics.State {
	if b == nil {
		return physics.State{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.physics
}

func (b *Body) Position() mgl64.Vec3 {
	return b.PhysicsState().Position
}

func (b *Body) Rotation() mgl64.Quat {
	return b.PhysicsState().Rotation
}

// Yaw is the heading of the body in degrees.
func (b *Body) Yaw() float64 {
	return mathutil.YawOf(b.Rotation())
}

// Bounds is the collision box at the current position.
func (b *Body) Bounds() physics.AABB {
	if b == nil {
		return physics.AABB{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return physics.BoxAt(b.physics.Position, b.halfExtents)
}
