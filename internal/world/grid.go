package world

import (
	"sync"
)

const (
	ChunkSize      = 16
	BlocksPerChunk = ChunkSize * ChunkSize * ChunkSize
)

// ChunkPos addresses a 16x16x16 cube of cells.
type ChunkPos struct {
	X int32
	Y int32
	Z int32
}

type chunk struct {
	solid [BlocksPerChunk]bool
	count int
}

// Grid is a sparse solid-block store. Cell (x, y, z) occupies the unit cube
// [x, x+1) x [y, y+1) x [z, z+1). Chunks are allocated on first write and
// released when their last solid cell is cleared.
type Grid struct {
	mu     sync.RWMutex
	chunks map[ChunkPos]*chunk
}

func NewGrid() *Grid {
	return &Grid{chunks: make(map[ChunkPos]*chunk)}
}

func (g *Grid) SetSolid(x, y, z int, solid bool) {
	pos, index := locate(x, y, z)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.setLocked(pos, index, solid)
}

// Fill sets every cell in the inclusive box [min, max].
func (g *Grid) Fill(min, max [3]int, solid bool) {
	for i := 0; i < 3; i++ {
		if min[i] > max[i] {
			min[i], max[i] = max[i], min[i]
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for y := min[1]; y <= max[1]; y++ {
		for x := min[0]; x <= max[0]; x++ {
			for z := min[2]; z <= max[2]; z++ {
				pos, index := locate(x, y, z)
				g.setLocked(pos, index, solid)
			}
		}
	}
}

func (g *Grid) setLocked(pos ChunkPos, index int, solid bool) {
	if g.chunks == nil {
		g.chunks = make(map[ChunkPos]*chunk)
	}
	c, ok := g.chunks[pos]
	if !ok {
		if !solid {
			return
		}
		c = &chunk{}
		g.chunks[pos] = c
	}
	if c.solid[index] == solid {
		return
	}
	c.solid[index] = solid
	if solid {
		c.count++
		return
	}
	c.count--
	if c.count == 0 {
		delete(g.chunks, pos)
	}
}

func (g *Grid) IsSolid(x, y, z int) bool {
	if g == nil {
		return false
	}
	pos, index := locate(x, y, z)

	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.chunks[pos]
	if !ok {
		return false
	}
	return c.solid[index]
}

func (g *Grid) ChunkCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.chunks)
}

func (g *Grid) SolidCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	total := 0
	for _, c := range g.chunks {
		total += c.count
	}
	return total
}

func locate(x, y, z int) (ChunkPos, int) {
	pos := ChunkPos{X: int32(floorDiv16(x)), Y: int32(floorDiv16(y)), Z: int32(floorDiv16(z))}
	index := floorMod16(y)*ChunkSize*ChunkSize + floorMod16(z)*ChunkSize + floorMod16(x)
	return pos, index
}

func floorDiv16(v int) int {
	q := v / 16
	if v < 0 && v%16 != 0 {
		q--
	}
	return q
}

func floorMod16(v int) int {
	m := v % 16
	if m < 0 {
		m += 16
	}
	return m
}
