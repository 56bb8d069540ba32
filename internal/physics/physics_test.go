package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type mockBlockStore struct {
	solid map[[3]int]bool
}

func newMockBlockStore() *mockBlockStore {
	return &mockBlockStore{solid: make(map[[3]int]bool)}
}

func (m *mockBlockStore) IsSolid(x, y, z int) bool {
	return m.solid[[3]int{x, y, z}]
}

func (m *mockBlockStore) setSolid(x, y, z int) {
	m.solid[[3]int{x, y, z}] = true
}

func addFloor(store *mockBlockStore, minX, maxX, minZ, maxZ, y int) {
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			store.setSolid(x, y, z)
		}
	}
}

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func newState(pos mgl64.Vec3) *State {
	return &State{Position: pos, Rotation: mgl64.QuatIdent()}
}

func TestStep_FreeFallOneTick(t *testing.T) {
	state := newState(mgl64.Vec3{0, 10, 0})
	state.GravityEnabled = true

	Step(state, NoPending(), 0.05, ActorHalfExtents, newMockBlockStore())

	approxEqual(t, state.Velocity[1], -0.4905, 1e-9, "velocity.y")
	approxEqual(t, state.Position[1], 10-0.4905*0.05, 1e-9, "position.y")
	if state.OnGround {
		t.Fatalf("onGround = true, want false")
	}
}

func TestStep_GravityOffKeepsHeight(t *testing.T) {
	state := newState(mgl64.Vec3{0, 3, 0})

	for i := 0; i < 50; i++ {
		Step(state, NoPending(), 0.02, ActorHalfExtents, nil)
	}

	approxEqual(t, state.Position[1], 3, 1e-12, "position.y")
}

func TestStep_LandsOnFloorAndStopsFalling(t *testing.T) {
	store := newMockBlockStore()
	addFloor(store, -2, 2, -2, 2, -1)
	state := newState(mgl64.Vec3{0.5, 0.26, 0.5})
	state.GravityEnabled = true

	Step(state, NoPending(), 0.05, ActorHalfExtents, store)

	approxEqual(t, state.Position[1], 0.25, 1e-9, "position.y")
	if state.Velocity[1] != 0 {
		t.Fatalf("velocity.y = %.6f, want 0 after landing", state.Velocity[1])
	}
	if !state.OnGround {
		t.Fatalf("onGround = false, want true")
	}
}

func TestStep_WallClipsRequestedTranslation(t *testing.T) {
	store := newMockBlockStore()
	addFloor(store, -2, 2, -2, 2, -1)
	store.setSolid(1, 0, 0)

	state := newState(mgl64.Vec3{0.5, 0.25, 0.5})
	state.Velocity = mgl64.Vec3{2, 0, 0}
	pending := NoPending()
	pending.Translation = mgl64.Vec3{0.5, 0, 0}

	Step(state, pending, 0.02, ActorHalfExtents, store)

	approxEqual(t, state.Position[0], 0.7, 1e-9, "position.x")
	if state.Velocity[0] != 0 {
		t.Fatalf("velocity.x = %.6f, want 0 after hitting wall", state.Velocity[0])
	}
}

func TestStep_LinearDragDampsVelocity(t *testing.T) {
	state := newState(mgl64.Vec3{})
	state.Velocity = mgl64.Vec3{1, 0, 0}
	state.LinearDrag = 2.5

	Step(state, NoPending(), 0.02, ActorHalfExtents, nil)

	approxEqual(t, state.Velocity[0], 1/1.05, 1e-12, "velocity.x")
	approxEqual(t, state.Position[0], 0.02/1.05, 1e-12, "position.x")
}

func TestStep_AppliesPendingRotationInWorldSpace(t *testing.T) {
	state := newState(mgl64.Vec3{})
	pending := NoPending()
	pending.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})

	Step(state, pending, 0.02, ActorHalfExtents, nil)
	Step(state, pending, 0.02, ActorHalfExtents, nil)

	forward := state.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
	if !forward.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 1e-9) {
		t.Fatalf("forward = %v, want -Z after two quarter turns", forward)
	}
}

func TestCollidesWithBlock(t *testing.T) {
	store := newMockBlockStore()
	store.setSolid(0, 0, 0)

	if !CollidesWithBlock(BoxAt(mgl64.Vec3{0.5, 0.5, 0.5}, ActorHalfExtents), store) {
		t.Fatalf("box inside solid cell should collide")
	}
	if CollidesWithBlock(BoxAt(mgl64.Vec3{0.5, 1.25, 0.5}, ActorHalfExtents), store) {
		t.Fatalf("box resting on top of cell should not collide")
	}
	if CollidesWithBlock(BoxAt(mgl64.Vec3{0.5, 0.5, 0.5}, ActorHalfExtents), nil) {
		t.Fatalf("nil block store should never collide")
	}
}
