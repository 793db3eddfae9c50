package scene

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-grid-raytracer/pkg/core"
	"github.com/df07/go-grid-raytracer/pkg/geometry"
	"github.com/df07/go-grid-raytracer/pkg/material"
)

func TestPreprocess_Accelerators(t *testing.T) {
	tests := []struct {
		accel    string
		name     string
		withGrid bool
	}{
		{"", AccelGrid, true},
		{AccelGrid, AccelGrid, true},
		{AccelLinear, AccelLinear, false},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.accel, func(t *testing.T) {
			s := NewDefaultScene()
			s.Accel = tt.accel
			require.NoError(t, s.Preprocess(nil))

			assert.Equal(t, tt.name, s.AccelName())
			assert.Equal(t, tt.withGrid, s.Grid() != nil)
			assert.Len(t, s.Shapes(), len(s.Objects))

			hit, ok := s.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
			require.True(t, ok)
			assert.Equal(t, "center glass", s.Objects[hit.Object].Name)
			assert.InDelta(t, 2.0, hit.T, 1e-9)
		})
	}
}

func TestPreprocess_Errors(t *testing.T) {
	s := &Scene{Name: "broken", Accel: "kd-tree"}
	s.AddObject("ball", geometry.NewSphere(core.NewVec3(0, 0, -3), 1), material.NewDiffuse(core.NewVec3(1, 1, 1)))
	err := s.Preprocess(nil)
	assert.ErrorIs(t, err, ErrUnknownAccelerator)
	assert.EqualError(t, err, `unknown accelerator: "kd-tree"`)

	s = &Scene{Name: "no material"}
	s.AddObject("ball", geometry.NewSphere(core.NewVec3(0, 0, -3), 1), nil)
	assert.ErrorIs(t, s.Preprocess(nil), ErrInvalidObject)

	s = &Scene{Name: "no shape"}
	s.AddObject("ghost", nil, material.NewDiffuse(core.NewVec3(1, 1, 1)))
	assert.ErrorIs(t, s.Preprocess(nil), ErrInvalidObject)
}

func TestPreprocess_CameraAspectFollowsImage(t *testing.T) {
	s := NewDefaultScene()
	s.SamplingConfig.Width = 300
	s.SamplingConfig.Height = 100
	require.NoError(t, s.Preprocess(nil))

	assert.Equal(t, 3.0, s.CameraConfig.AspectRatio)
	require.NotNil(t, s.Camera)
}

func TestPreprocess_Logging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	s := NewSphereGridScene()
	require.NoError(t, s.Preprocess(logger))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "uniform grid built", entries[0].Message)
	assert.Equal(t, logrus.DebugLevel, entries[0].Level)
	assert.Equal(t, 400, entries[0].Data["objects"])
	assert.Equal(t, 1, entries[0].Data["unbounded"])
	assert.Equal(t, "Scene ready", entries[1].Message)
	assert.Equal(t, "spheregrid", entries[1].Data["scene"])
}

func TestIntersect_BeforePreprocess(t *testing.T) {
	s := NewDefaultScene()
	_, ok := s.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	assert.False(t, ok)
}

func TestSphereGridScene_Grid(t *testing.T) {
	s := NewSphereGridScene()
	require.NoError(t, s.Preprocess(nil))

	grid := s.Grid()
	require.NotNil(t, grid)
	assert.Equal(t, []int{0}, grid.Unbounded())

	stats := grid.Stats()
	assert.Equal(t, SphereGridSize*SphereGridSize, stats.Objects)
	assert.Greater(t, stats.OccupiedCells, 1)
	for axis, res := range grid.Resolution() {
		assert.GreaterOrEqual(t, res, 1, "axis %d", axis)
	}
}

func TestMergeSamplingConfig(t *testing.T) {
	base := DefaultSamplingConfig()
	merged := MergeSamplingConfig(base, SamplingConfig{Width: 64, AntiAliasing: 1, Background: core.NewVec3(0, 0, 1)})

	assert.Equal(t, 64, merged.Width)
	assert.Equal(t, base.Height, merged.Height)
	assert.Equal(t, 1, merged.AntiAliasing)
	assert.Equal(t, base.MaxDepth, merged.MaxDepth)
	assert.Equal(t, core.NewVec3(0, 0, 1), merged.Background)
	assert.Equal(t, 1.0, merged.Gamma)

	kept := MergeSamplingConfig(base, SamplingConfig{Ambient: 0, Background: core.Vec3{}})
	assert.Equal(t, base.Ambient, kept.Ambient, "zero values never override")
	assert.Equal(t, base.Background, kept.Background)
}

func TestOklchToRGB_InRange(t *testing.T) {
	for hue := 0.0; hue < 360; hue += 30 {
		c := oklchToRGB(0.65, 0.25, hue)
		for i := 0; i < 3; i++ {
			assert.True(t, c.Axis(i) >= 0 && c.Axis(i) <= 1, "hue %v component %d = %v", hue, i, c.Axis(i))
		}
	}
}
