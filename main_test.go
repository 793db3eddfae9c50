package main

import (
	"context"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-grid-raytracer/pkg/geometry"
	"github.com/df07/go-grid-raytracer/pkg/scene"
)

func TestParseFlags(t *testing.T) {
	cfg, _, err := parseFlags([]string{"-scene", "boxes", "-width", "32", "-resolution", "density", "-res", "2.5", "-stats"})
	require.NoError(t, err)
	assert.Equal(t, "boxes", cfg.Scene)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, "density", cfg.Resolution)
	assert.Equal(t, 2.5, cfg.Res)
	assert.True(t, cfg.Stats)

	_, _, err = parseFlags([]string{"-nosuchflag"})
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      Config
		expected geometry.ResolutionPolicy
		wantErr  bool
	}{
		{"scene default", Config{}, nil, false},
		{"fixed", Config{Resolution: "fixed", Res: 8}, geometry.FixedResolution{N: 8}, false},
		{"density", Config{Resolution: "density", Res: 3}, geometry.DensityResolution{Lambda: 3}, false},
		{"fractional fixed", Config{Resolution: "fixed", Res: 2.5}, nil, true},
		{"res without policy", Config{Res: 4}, nil, true},
		{"unknown policy", Config{Resolution: "octree"}, nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := scene.NewDefaultScene()
			err := applyOverrides(s, tc.cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, s.GridConfig.Resolution)
		})
	}
}

func TestApplyOverrides_Sampling(t *testing.T) {
	s := scene.NewDefaultScene()
	require.NoError(t, applyOverrides(s, Config{Width: 40, Height: 30, AA: 2, Depth: 3, Accel: "linear"}))
	assert.Equal(t, 40, s.SamplingConfig.Width)
	assert.Equal(t, 30, s.SamplingConfig.Height)
	assert.Equal(t, 2, s.SamplingConfig.AntiAliasing)
	assert.Equal(t, 3, s.SamplingConfig.MaxDepth)
	assert.Equal(t, 0.4, s.SamplingConfig.Ambient, "unset options keep scene values")
	assert.Equal(t, "linear", s.Accel)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "render.png")
	plot := filepath.Join(dir, "occupancy.png")

	err := run(context.Background(), Config{
		Scene:  "default",
		Width:  24,
		Height: 16,
		AA:     1,
		Out:    out,
		Stats:  true,
		Plot:   plot,
	})
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 24, 16), img.Bounds())

	_, err = os.Stat(plot)
	assert.NoError(t, err)
}

func TestRun_UnknownScene(t *testing.T) {
	err := run(context.Background(), Config{Scene: "cornell"})
	assert.ErrorIs(t, err, scene.ErrUnknownScene)
}

func TestRun_Inspect(t *testing.T) {
	err := run(context.Background(), Config{Scene: "default", Width: 20, Height: 20, Inspect: "10,10"})
	assert.NoError(t, err)

	err = run(context.Background(), Config{Scene: "default", Width: 20, Height: 20, Inspect: "nope"})
	assert.Error(t, err)
}
