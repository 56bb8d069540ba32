package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type BlockStore interface {
	IsSolid(x, y, z int) bool
}

type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BoxAt returns the box of the given half extents centred on pos.
func BoxAt(pos, halfExtents mgl64.Vec3) AABB {
	return AABB{Min: pos.Sub(halfExtents), Max: pos.Add(halfExtents)}
}

func CollidesWithBlock(box AABB, blockStore BlockStore) bool {
	if blockStore == nil {
		return false
	}
	lo, hi := cellRange(box)
	for y := lo[1]; y <= hi[1]; y++ {
		for x := lo[0]; x <= hi[0]; x++ {
			for z := lo[2]; z <= hi[2]; z++ {
				if !blockStore.IsSolid(x, y, z) {
					continue
				}
				block := AABB{
					Min: mgl64.Vec3{float64(x), float64(y), float64(z)},
					Max: mgl64.Vec3{float64(x + 1), float64(y + 1), float64(z + 1)},
				}
				if intersects(box, block) {
					return true
				}
			}
		}
	}
	return false
}

// ResolveMovement sweeps the box at pos by delta one axis at a time (Y, X, Z)
// and returns the reachable position plus which axes were clipped.
func ResolveMovement(pos, delta, halfExtents mgl64.Vec3, blockStore BlockStore) (mgl64.Vec3, [3]bool) {
	var clipped [3]bool
	for _, axis := range [3]int{1, 0, 2} {
		allowed := resolveAxis(pos, axis, delta[axis], halfExtents, blockStore)
		if !nearlyEqual(allowed, delta[axis]) {
			clipped[axis] = true
		}
		pos[axis] += allowed
	}
	return pos, clipped
}

func resolveAxis(pos mgl64.Vec3, axis int, delta float64, halfExtents mgl64.Vec3, blockStore BlockStore) float64 {
	if blockStore == nil || nearlyZero(delta) {
		return delta
	}

	box := BoxAt(pos, halfExtents)
	lo, hi := cellRange(box)
	allowed := delta

	var start, end int
	if delta > 0 {
		start = int(math.Floor(box.Max[axis]))
		end = int(math.Floor(box.Max[axis] + delta))
	} else {
		start = int(math.Floor(box.Min[axis] + delta))
		end = int(math.Floor(box.Min[axis] - CollisionAxisTolerance))
	}
	lo[axis], hi[axis] = start, end

	var cell [3]int
	for cell[0] = lo[0]; cell[0] <= hi[0]; cell[0]++ {
		for cell[1] = lo[1]; cell[1] <= hi[1]; cell[1]++ {
			for cell[2] = lo[2]; cell[2] <= hi[2]; cell[2]++ {
				if !blockStore.IsSolid(cell[0], cell[1], cell[2]) {
					continue
				}
				if delta > 0 {
					candidate := math.Max(float64(cell[axis])-box.Max[axis], 0)
					allowed = math.Min(allowed, candidate)
				} else {
					candidate := math.Min(float64(cell[axis]+1)-box.Min[axis], 0)
					allowed = math.Max(allowed, candidate)
				}
			}
		}
	}
	return allowed
}

func cellRange(box AABB) (lo, hi [3]int) {
	for i := 0; i < 3; i++ {
		lo[i] = floorForMin(box.Min[i])
		hi[i] = floorForMax(box.Max[i])
	}
	return lo, hi
}

func floorForMin(v float64) int {
	return int(math.Floor(v + CollisionAxisTolerance))
}

func floorForMax(v float64) int {
	return int(math.Floor(v - CollisionAxisTolerance))
}

func intersects(a, b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Min[i] >= b.Max[i] || a.Max[i] <= b.Min[i] {
			return false
		}
	}
	return true
}

func nearlyZero(v float64) bool {
	return math.Abs(v) <= CollisionAxisTolerance
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= CollisionAxisTolerance
}

// Intersects reports strict overlap; touching faces do not count.
func (a AABB) Intersects(b AABB) bool {
	return intersects(a, b)
}
