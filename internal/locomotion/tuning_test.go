package locomotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTuningIsValid(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())
}

func TestValidateReportsEveryProblem(t *testing.T) {
	tuning := DefaultTuning()
	tuning.ExitDistance = 0
	tuning.MaxDepth = -1
	tuning.WaterTag = ""

	err := tuning.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit_distance")
	assert.Contains(t, err.Error(), "max_depth")
	assert.Contains(t, err.Error(), "water_tag")
}

func TestParseSteering(t *testing.T) {
	tests := []struct {
		in      string
		want    Steering
		wantErr bool
	}{
		{"", SteeringDirectional, false},
		{"directional", SteeringDirectional, false},
		{"tank", SteeringTank, false},
		{"hover", SteeringDirectional, true},
	}
	for _, tt := range tests {
		got, err := ParseSteering(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "Ground", Ground.String())
	assert.Equal(t, "SurfaceSwim", SurfaceSwim.String())
	assert.Equal(t, "Submerged", Submerged.String())
	assert.Equal(t, "Unknown", Mode(9).String())
	assert.False(t, Ground.InWaterMode())
	assert.True(t, Submerged.InWaterMode())
}
