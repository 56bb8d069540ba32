package surface

import (
	"sync"

	"github.com/aquilax/go-perlin"
)

const (
	waveAlpha   = 2.0
	waveBeta    = 2.0
	waveOctaves = int32(3)
)

// Wave is a flat plane whose height drifts over time with 1D perlin noise.
// It stands in for a moving water-surface object.
type Wave struct {
	mu        sync.RWMutex
	noise     *perlin.Perlin
	base      float64
	amplitude float64
	frequency float64
	elapsed   float64
}

func NewWave(base, amplitude, frequency float64, seed int64) *Wave {
	return &Wave{
		noise:     perlin.NewPerlin(waveAlpha, waveBeta, waveOctaves, seed),
		base:      base,
		amplitude: amplitude,
		frequency: frequency,
	}
}

// Advance moves the wave forward by dt seconds.
func (w *Wave) Advance(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	w.mu.Lock()
	w.elapsed += dt
	w.mu.Unlock()
}

func (w *Wave) Height() float64 {
	if w == nil {
		return 0
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.amplitude == 0 || w.frequency == 0 {
		return w.base
	}
	return w.base + w.amplitude*w.noise.Noise1D(w.elapsed*w.frequency)
}

func (w *Wave) Base() float64 {
	if w == nil {
		return 0
	}
	return w.base
}
