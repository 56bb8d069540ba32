package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/beaver/internal/physics"
)

type recordingContainment struct {
	calls []string
}

func (r *recordingContainment) EnterWater(tag string) { r.calls = append(r.calls, "enter:"+tag) }
func (r *recordingContainment) ExitWater(tag string) { r.calls = append(r.calls, "exit:"+tag) }

func TestGridSetSolidAcrossChunkBoundaries(t *testing.T) {
	g := NewGrid()
	cells := [][3]int{{0, 0, 0}, {-1, -1, -1}, {15, 16, -17}, {-16, 31, 32}}
	for _, c := range cells {
		g.SetSolid(c[0], c[1], c[2], true)
	}

	for _, c := range cells {
		if !g.IsSolid(c[0], c[1], c[2]) {
			t.Fatalf("cell %v should be solid", c)
		}
	}
	if g.IsSolid(1, 0, 0) || g.IsSolid(-2, -1, -1) {
		t.Fatalf("neighbour cells should stay empty")
	}
	if got := g.ChunkCount(); got != 4 {
		t.Fatalf("ChunkCount() = %d, want 4", got)
	}
}

func TestGridClearingReleasesChunk(t *testing.T) {
	g := NewGrid()
	g.SetSolid(3, 3, 3, true)
	g.SetSolid(3, 3, 3, true)
	if got := g.SolidCount(); got != 1 {
		t.Fatalf("SolidCount() = %d, want 1", got)
	}

	g.SetSolid(3, 3, 3, false)
	if got := g.ChunkCount(); got != 0 {
		t.Fatalf("ChunkCount() = %d, want 0 after clearing", got)
	}
	g.SetSolid(40, 0, 0, false)
	if got := g.ChunkCount(); got != 0 {
		t.Fatalf("clearing an empty cell allocated a chunk")
	}
}

func TestGridFillInclusiveAndUnordered(t *testing.T) {
	g := NewGrid()
	g.Fill([3]int{2, 0, 2}, [3]int{-2, 0, -2}, true)

	if got := g.SolidCount(); got != 25 {
		t.Fatalf("SolidCount() = %d, want 25", got)
	}
	if !g.IsSolid(-2, 0, 2) || g.IsSolid(3, 0, 0) {
		t.Fatalf("fill bounds are wrong")
	}
}

func TestNilGridIsEmpty(t *testing.T) {
	var g *Grid
	if g.IsSolid(0, 0, 0) {
		t.Fatalf("nil grid should report no solids")
	}
}

func TestGridBlocksMovement(t *testing.T) {
	g := NewGrid()
	g.Fill([3]int{-2, -1, -2}, [3]int{2, -1, 2}, true)

	pos, clipped := physics.ResolveMovement(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, -1, 0}, physics.ActorHalfExtents, g)
	if !clipped[1] {
		t.Fatalf("expected vertical clip")
	}
	if pos.Y() != physics.ActorHalfExtents.Y() {
		t.Fatalf("pos.Y = %v, want %v", pos.Y(), physics.ActorHalfExtents.Y())
	}
}

func TestTrackerEnterExit(t *testing.T) {
	rec := &recordingContainment{}
	water := Volume{Tag: "Water", Bounds: physics.AABB{Max: mgl64.Vec3{4, 1, 4}}}
	tr := NewTracker(rec, water)

	half := mgl64.Vec3{0.25, 0.25, 0.25}
	tr.Update(physics.BoxAt(mgl64.Vec3{-1, 0.5, 2}, half))
	tr.Update(physics.BoxAt(mgl64.Vec3{-0.25, 0.5, 2}, half))
	tr.Update(physics.BoxAt(mgl64.Vec3{0.5, 0.5, 2}, half))
	tr.Update(physics.BoxAt(mgl64.Vec3{2, 0.5, 2}, half))
	if !tr.Inside("Water") {
		t.Fatalf("tracker should report inside")
	}
	tr.Update(physics.BoxAt(mgl64.Vec3{5, 0.5, 2}, half))

	want := []string{"enter:Water", "exit:Water"}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", rec.calls, want)
		}
	}
}

func TestTrackerMergesSameTagVolumes(t *testing.T) {
	rec := &recordingContainment{}
	a := Volume{Tag: "Water", Bounds: physics.AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 1, 2}}}
	b := Volume{Tag: "Water", Bounds: physics.AABB{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{4, 1, 2}}}
	mud := Volume{Tag: "Mud", Bounds: physics.AABB{Min: mgl64.Vec3{3, 0, 0}, Max: mgl64.Vec3{6, 1, 2}}}
	tr := NewTracker(rec, b, a, mud)

	half := mgl64.Vec3{0.1, 0.1, 0.1}
	tr.Update(physics.BoxAt(mgl64.Vec3{1, 0.5, 1}, half))
	tr.Update(physics.BoxAt(mgl64.Vec3{2, 0.5, 1}, half))
	tr.Update(physics.BoxAt(mgl64.Vec3{2.5, 0.5, 1}, half))
	tr.Update(physics.BoxAt(mgl64.Vec3{5, 0.5, 1}, half))

	want := []string{"enter:Water", "exit:Water", "enter:Mud"}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", rec.calls, want)
		}
	}
}

func TestTrackerTouchingIsNotInside(t *testing.T) {
	rec := &recordingContainment{}
	tr := NewTracker(rec, Volume{Tag: "Water", Bounds: physics.AABB{Max: mgl64.Vec3{1, 1, 1}}})

	tr.Update(physics.AABB{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{2, 1, 1}})
	if len(rec.calls) != 0 {
		t.Fatalf("touching faces should not count, got %v", rec.calls)
	}
}

func TestBuildPond(t *testing.T) {
	cfg := DefaultPond()
	scene, err := BuildPond(cfg)
	if err != nil {
		t.Fatalf("BuildPond failed: %v", err)
	}

	if !scene.Grid.IsSolid(0, -1, 0) {
		t.Fatalf("ground under spawn should be solid")
	}
	if scene.Grid.IsSolid(0, -1, 10) {
		t.Fatalf("pond interior should be carved out")
	}
	if !scene.Grid.IsSolid(0, -cfg.Depth-1, 10) {
		t.Fatalf("pond floor should be solid")
	}
	if len(scene.Volumes) != 1 || scene.Volumes[0].Tag != "Water" {
		t.Fatalf("volumes = %+v", scene.Volumes)
	}

	spawnBox := physics.BoxAt(scene.Spawn, physics.ActorHalfExtents)
	if physics.CollidesWithBlock(spawnBox, scene.Grid) {
		t.Fatalf("spawn overlaps the ground")
	}
	if spawnBox.Intersects(scene.Volumes[0].Bounds) {
		t.Fatalf("spawn should start dry")
	}
}

func TestPondConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PondConfig)
	}{
		{name: "zero depth", mutate: func(c *PondConfig) { c.Depth = 0 }},
		{name: "inverted x", mutate: func(c *PondConfig) { c.PondMin[0], c.PondMax[0] = 3, -3 }},
		{name: "outside ground", mutate: func(c *PondConfig) { c.PondMax[1] = 100 }},
		{name: "empty tag", mutate: func(c *PondConfig) { c.Tag = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPond()
			tt.mutate(&cfg)
			if _, err := BuildPond(cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
