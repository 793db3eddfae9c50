package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-grid-raytracer/pkg/geometry"
)

func TestOverrides_Apply(t *testing.T) {
	s := NewDefaultScene()
	before := s.SamplingConfig

	require.NoError(t, Overrides{}.Apply(s))
	assert.Equal(t, before, s.SamplingConfig, "empty overrides change nothing")
	assert.Nil(t, s.GridConfig.Resolution)

	require.NoError(t, Overrides{Width: 64, Depth: 2, Accel: AccelLinear, Resolution: ResolutionDensity, Res: 4}.Apply(s))
	assert.Equal(t, 64, s.SamplingConfig.Width)
	assert.Equal(t, before.Height, s.SamplingConfig.Height)
	assert.Equal(t, 2, s.SamplingConfig.MaxDepth)
	assert.Equal(t, AccelLinear, s.Accel)
	assert.Equal(t, geometry.DensityResolution{Lambda: 4}, s.GridConfig.Resolution)
}

func TestOverrides_ApplyErrors(t *testing.T) {
	tests := []struct {
		name      string
		overrides Overrides
		message   string
	}{
		{"res alone", Overrides{Res: 3}, "res needs a resolution policy"},
		{"fixed zero", Overrides{Resolution: ResolutionFixed}, "res must be a positive integer for fixed resolution, got 0"},
		{"negative density", Overrides{Resolution: ResolutionDensity, Res: -1}, "res must not be negative, got -1"},
		{"unknown", Overrides{Resolution: "adaptive"}, `unknown resolution policy "adaptive"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.overrides.Apply(NewDefaultScene()), tt.message)
		})
	}
}
