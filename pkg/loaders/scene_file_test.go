package loaders

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-grid-raytracer/pkg/core"
	"github.com/df07/go-grid-raytracer/pkg/geometry"
	"github.com/df07/go-grid-raytracer/pkg/lights"
	"github.com/df07/go-grid-raytracer/pkg/material"
)

const sampleScene = `# Scene: Sample
name: sample
camera:
  center: [0, 1, 5]
  look_at: [0, 0, 0]
  vfov: 45
render:
  width: 64
  height: 48
  anti_aliasing: 1
  max_depth: 3
  ambient: 0
  background: [0, 0, 0]
accel: grid
grid:
  density: 3
  min: [-10, -10, -10]
  max: [10, 10, 10]
materials:
  red:
    color: [1, 0, 0]
  floor:
    checker: {even: [0, 0, 0], odd: [1, 1, 1], size: 2}
  glass:
    type: refraction
    ior: 1.5
  chrome:
    type: reflection
    opaque: true
objects:
  - {name: ball, type: sphere, center: [0, 0, 0], radius: 1, material: glass}
  - {type: box, center: [2, 0, 0], side: 1, material: red}
  - {type: box, center: [-2, 0, 0], side: 1, material: chrome}
  - {type: plane, point: [0, -1, 0], normal: [0, 1, 0], material: floor}
lights:
  - {position: [5, 5, 5]}
  - {type: directional, direction: [0, -1, 0], color: [0.5, 0.5, 0.5]}
`

func TestParseScene(t *testing.T) {
	s, err := ParseScene([]byte(sampleScene))
	require.NoError(t, err)

	assert.Equal(t, "sample", s.Name)
	assert.Equal(t, core.NewVec3(0, 1, 5), s.CameraConfig.Center)
	assert.Equal(t, 45.0, s.CameraConfig.VFov)
	assert.Equal(t, core.NewVec3(0, 1, 0), s.CameraConfig.Up, "unset fields keep defaults")

	assert.Equal(t, 64, s.SamplingConfig.Width)
	assert.Equal(t, 48, s.SamplingConfig.Height)
	assert.Equal(t, 1, s.SamplingConfig.AntiAliasing)
	assert.Equal(t, 3, s.SamplingConfig.MaxDepth)
	assert.Equal(t, core.Vec3{}, s.SamplingConfig.Background)
	assert.Zero(t, s.SamplingConfig.Ambient, "explicit zero replaces the default")
	assert.Equal(t, 0.01, s.SamplingConfig.Bias)

	assert.Equal(t, geometry.DensityResolution{Lambda: 3}, s.GridConfig.Resolution)
	require.NotNil(t, s.GridConfig.Bounds)
	assert.Equal(t, core.NewVec3(-10, -10, -10), s.GridConfig.Bounds.Min)

	require.Len(t, s.Objects, 4)
	assert.Equal(t, "ball", s.Objects[0].Name)
	assert.IsType(t, &geometry.Sphere{}, s.Objects[0].Shape)
	assert.IsType(t, &geometry.Box{}, s.Objects[1].Shape)
	assert.IsType(t, &geometry.Plane{}, s.Objects[3].Shape)

	assert.Equal(t, material.ReflectionAndRefraction, s.Objects[0].Material.Type)
	assert.Equal(t, 1.5, s.Objects[0].Material.IOR)
	assert.True(t, math.IsInf(s.Objects[2].Material.IOR, 1))
	assert.IsType(t, &material.Checkerboard{}, s.Objects[3].Material.Color)

	require.Len(t, s.Lights, 2)
	assert.Equal(t, lights.LightTypePoint, s.Lights[0].Type())
	assert.Equal(t, lights.LightTypeDirectional, s.Lights[1].Type())

	require.NoError(t, s.Preprocess(nil))
	assert.NotNil(t, s.Grid())
	assert.Equal(t, []int{3}, s.Grid().Unbounded())
}

func TestParseScene_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errText string
	}{
		{"short vector", "objects:\n  - {type: sphere, center: [0, 0], radius: 1, material: m}\nmaterials: {m: {}}\n", "expected 3 components"},
		{"unknown material", "objects:\n  - {type: sphere, center: [0, 0, 0], radius: 1, material: nope}\n", "unknown material"},
		{"unknown shape", "materials: {m: {}}\nobjects:\n  - {type: torus, material: m}\n", "unknown object type"},
		{"bad radius", "materials: {m: {}}\nobjects:\n  - {type: sphere, center: [0, 0, 0], radius: -1, material: m}\n", "radius must be positive"},
		{"bad material type", "materials: {m: {type: velvet}}\n", "unknown material type"},
		{"resolution and density", "grid: {resolution: 4, density: 2}\n", "mutually exclusive"},
		{"zero width", "render: {width: 0}\n", "width must be positive"},
		{"bad light", "lights:\n  - {type: area}\n", "unknown light type"},
		{"bad vfov", "camera: {vfov: 180}\n", "vfov"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tc.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScene), "error %v should wrap ErrInvalidScene", err)
			assert.Contains(t, err.Error(), tc.errText)
		})
	}
}

func TestParseScene_Malformed(t *testing.T) {
	_, err := ParseScene([]byte("objects: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse scene")
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "sample.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleScene), 0o644))
	s, err := LoadSceneFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "sample", s.Name)

	jsonPath := filepath.Join(dir, "unnamed.json")
	jsonScene := `{"materials": {"m": {"color": [0.2, 0.4, 0.6]}},
"objects": [{"type": "sphere", "center": [0, 0, -3], "radius": 1, "material": "m"}],
"lights": [{"position": [1, 1, 1]}]}`
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonScene), 0o644))
	s, err = LoadSceneFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "unnamed.json", s.Name)
	assert.Len(t, s.Objects, 1)
}

func TestLoadSceneFile_Validation(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSceneFile(filepath.Join(dir, "scene.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extension")

	_, err = LoadSceneFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	big := filepath.Join(dir, "big.yaml")
	require.NoError(t, os.WriteFile(big, []byte("# "+strings.Repeat("x", MaxSceneFileSize)), 0o644))
	_, err = LoadSceneFile(big)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestLoadSceneFile_BundledScenes(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadSceneFile(path)
			require.NoError(t, err)
			require.NoError(t, s.Preprocess(nil))
			assert.NotNil(t, s.Grid())
			assert.NotEmpty(t, s.Lights)
		})
	}
}
