package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOracleFallsBackToActorHeight(t *testing.T) {
	var nilOracle *Oracle
	assert.Equal(t, 3.5, nilOracle.Height(3.5))

	o := NewOracle(nil, 0.4)
	assert.False(t, o.HasReference())
	assert.Equal(t, -2.0, o.Height(-2.0), "offset must not apply without a reference")
}

func TestOracleAddsOffsetToReference(t *testing.T) {
	o := NewOracle(Static(1.5), 0.25)
	require.True(t, o.HasReference())
	assert.InDelta(t, 1.75, o.Height(-10), 1e-12)

	o.SetReference(Static(-1))
	assert.InDelta(t, -0.75, o.Height(100), 1e-12)
}

func TestWaveStaysWithinAmplitude(t *testing.T) {
	w := NewWave(2, 0.3, 0.5, 42)
	for i := 0; i < 500; i++ {
		w.Advance(0.02)
		h := w.Height()
		assert.LessOrEqual(t, h, 2.0+0.3*2)
		assert.GreaterOrEqual(t, h, 2.0-0.3*2)
	}
	assert.Equal(t, 2.0, w.Base())
}

func TestWaveWithoutAmplitudeIsFlat(t *testing.T) {
	w := NewWave(-1, 0, 1, 7)
	w.Advance(3)
	assert.Equal(t, -1.0, w.Height())
}

func TestWaveIsDeterministicForSeed(t *testing.T) {
	a := NewWave(0, 1, 0.7, 99)
	b := NewWave(0, 1, 0.7, 99)
	for i := 0; i < 20; i++ {
		a.Advance(0.1)
		b.Advance(0.1)
		require.Equal(t, a.Height(), b.Height())
	}
}
