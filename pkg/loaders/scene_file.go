package loaders

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-grid-raytracer/pkg/core"
	"github.com/df07/go-grid-raytracer/pkg/geometry"
	"github.com/df07/go-grid-raytracer/pkg/lights"
	"github.com/df07/go-grid-raytracer/pkg/material"
	"github.com/df07/go-grid-raytracer/pkg/scene"
)

// MaxSceneFileSize bounds the size of a scene file
const MaxSceneFileSize = 1 * 1024 * 1024 // 1MB

// ErrInvalidScene wraps every validation failure in a scene file
var ErrInvalidScene = errors.New("invalid scene file")

// SceneFile is the on-disk description of a scene. JSON files are read with
// the same schema. Fields omitted from the file keep their defaults.
type SceneFile struct {
	Name      string                  `yaml:"name"`
	Camera    *CameraSpec             `yaml:"camera"`
	Render    *RenderSpec             `yaml:"render"`
	Accel     string                  `yaml:"accel"`
	Grid      *GridSpec               `yaml:"grid"`
	Materials map[string]MaterialSpec `yaml:"materials"`
	Objects   []ObjectSpec            `yaml:"objects"`
	Lights    []LightSpec             `yaml:"lights"`
}

// CameraSpec overrides the default camera
type CameraSpec struct {
	Center []float64 `yaml:"center"`
	LookAt []float64 `yaml:"look_at"`
	Up     []float64 `yaml:"up"`
	VFov   *float64  `yaml:"vfov"`
}

// RenderSpec overrides the default sampling configuration
type RenderSpec struct {
	Width        *int      `yaml:"width"`
	Height       *int      `yaml:"height"`
	AntiAliasing *int      `yaml:"anti_aliasing"`
	MaxDepth     *int      `yaml:"max_depth"`
	Bias         *float64  `yaml:"bias"`
	Ambient      *float64  `yaml:"ambient"`
	Background   []float64 `yaml:"background"`
	Gamma        *float64  `yaml:"gamma"`
}

// GridSpec configures the uniform grid. Resolution and Density are
// mutually exclusive.
type GridSpec struct {
	Resolution *int      `yaml:"resolution"` // Cells per axis
	Density    *float64  `yaml:"density"`    // Target objects per cell
	Min        []float64 `yaml:"min"`        // Optional extra bounds
	Max        []float64 `yaml:"max"`
}

// MaterialSpec describes a named material
type MaterialSpec struct {
	Type    string       `yaml:"type"` // diffuse, reflection, refraction, diffuse-reflection
	Color   []float64    `yaml:"color"`
	Checker *CheckerSpec `yaml:"checker"`
	Kd      *float64     `yaml:"kd"`
	Ks      *float64     `yaml:"ks"`
	Phong   *float64     `yaml:"phong"`
	IOR     *float64     `yaml:"ior"`
	Opaque  bool         `yaml:"opaque"` // Reflects everything; overrides ior
}

// CheckerSpec describes a checkerboard colour source
type CheckerSpec struct {
	Even []float64 `yaml:"even"`
	Odd  []float64 `yaml:"odd"`
	Size float64   `yaml:"size"`
}

// ObjectSpec describes one shape
type ObjectSpec struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"` // sphere, plane, box
	Material string    `yaml:"material"`
	Center   []float64 `yaml:"center"` // sphere, box
	Radius   float64   `yaml:"radius"` // sphere
	Side     float64   `yaml:"side"`   // box
	Point    []float64 `yaml:"point"`  // plane
	Normal   []float64 `yaml:"normal"` // plane
}

// LightSpec describes one light
type LightSpec struct {
	Type      string    `yaml:"type"` // point, directional
	Position  []float64 `yaml:"position"`
	Direction []float64 `yaml:"direction"`
	Color     []float64 `yaml:"color"`
}

// LoadSceneFile reads a YAML or JSON scene file and builds the scene.
// The scene is not preprocessed.
func LoadSceneFile(path string) (*scene.Scene, error) {
	cleanPath := filepath.Clean(path)
	switch ext := filepath.Ext(cleanPath); ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("scene file must have .yaml, .yml or .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scene file: %w", err)
	}
	if fileInfo.Size() > MaxSceneFileSize {
		return nil, fmt.Errorf("scene file too large: %d bytes (max %d)", fileInfo.Size(), MaxSceneFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cleanPath, err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(cleanPath)
	}
	return s, nil
}

// ParseScene builds a scene from YAML (or JSON) data
func ParseScene(data []byte) (*scene.Scene, error) {
	var file SceneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return file.Build()
}

// Build converts the file description into a scene
func (f *SceneFile) Build() (*scene.Scene, error) {
	s := &scene.Scene{
		Name:           f.Name,
		CameraConfig:   geometry.DefaultCameraConfig(),
		SamplingConfig: scene.DefaultSamplingConfig(),
		Accel:          f.Accel,
	}

	if err := f.applyCamera(&s.CameraConfig); err != nil {
		return nil, err
	}
	if err := f.applyRender(&s.SamplingConfig); err != nil {
		return nil, err
	}
	if err := f.applyGrid(&s.GridConfig); err != nil {
		return nil, err
	}

	materials := make(map[string]*material.Material, len(f.Materials))
	for name, spec := range f.Materials {
		mat, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("%w: material %q: %v", ErrInvalidScene, name, err)
		}
		materials[name] = mat
	}

	for i, spec := range f.Objects {
		shape, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("%w: object %d: %v", ErrInvalidScene, i, err)
		}
		mat, ok := materials[spec.Material]
		if !ok {
			return nil, fmt.Errorf("%w: object %d: unknown material %q", ErrInvalidScene, i, spec.Material)
		}
		s.AddObject(spec.Name, shape, mat)
	}

	for i, spec := range f.Lights {
		light, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("%w: light %d: %v", ErrInvalidScene, i, err)
		}
		s.AddLight(light)
	}

	return s, nil
}

func (f *SceneFile) applyCamera(cfg *geometry.CameraConfig) error {
	if f.Camera == nil {
		return nil
	}
	fields := []struct {
		name string
		src  []float64
		dst  *core.Vec3
	}{
		{"center", f.Camera.Center, &cfg.Center},
		{"look_at", f.Camera.LookAt, &cfg.LookAt},
		{"up", f.Camera.Up, &cfg.Up},
	}
	for _, field := range fields {
		if field.src == nil {
			continue
		}
		v, err := toVec3(field.src)
		if err != nil {
			return fmt.Errorf("%w: camera %s: %v", ErrInvalidScene, field.name, err)
		}
		*field.dst = v
	}
	if f.Camera.VFov != nil {
		if *f.Camera.VFov <= 0 || *f.Camera.VFov >= 180 {
			return fmt.Errorf("%w: camera vfov must be in (0, 180), got %g", ErrInvalidScene, *f.Camera.VFov)
		}
		cfg.VFov = *f.Camera.VFov
	}
	return nil
}

func (f *SceneFile) applyRender(cfg *scene.SamplingConfig) error {
	r := f.Render
	if r == nil {
		return nil
	}
	positive := []struct {
		name string
		src  *int
		dst  *int
	}{
		{"width", r.Width, &cfg.Width},
		{"height", r.Height, &cfg.Height},
		{"anti_aliasing", r.AntiAliasing, &cfg.AntiAliasing},
	}
	for _, field := range positive {
		if field.src == nil {
			continue
		}
		if *field.src <= 0 {
			return fmt.Errorf("%w: render %s must be positive, got %d", ErrInvalidScene, field.name, *field.src)
		}
		*field.dst = *field.src
	}
	if r.MaxDepth != nil {
		if *r.MaxDepth < 0 {
			return fmt.Errorf("%w: render max_depth must not be negative", ErrInvalidScene)
		}
		cfg.MaxDepth = *r.MaxDepth
	}
	if r.Bias != nil {
		cfg.Bias = *r.Bias
	}
	if r.Ambient != nil {
		cfg.Ambient = *r.Ambient
	}
	if r.Gamma != nil {
		cfg.Gamma = *r.Gamma
	}
	if r.Background != nil {
		v, err := toVec3(r.Background)
		if err != nil {
			return fmt.Errorf("%w: render background: %v", ErrInvalidScene, err)
		}
		cfg.Background = v
	}
	return nil
}

func (f *SceneFile) applyGrid(cfg *geometry.GridConfig) error {
	g := f.Grid
	if g == nil {
		return nil
	}
	if g.Resolution != nil && g.Density != nil {
		return fmt.Errorf("%w: grid resolution and density are mutually exclusive", ErrInvalidScene)
	}
	if g.Resolution != nil {
		if *g.Resolution <= 0 {
			return fmt.Errorf("%w: grid resolution must be positive, got %d", ErrInvalidScene, *g.Resolution)
		}
		cfg.Resolution = geometry.FixedResolution{N: *g.Resolution}
	}
	if g.Density != nil {
		if *g.Density <= 0 {
			return fmt.Errorf("%w: grid density must be positive, got %g", ErrInvalidScene, *g.Density)
		}
		cfg.Resolution = geometry.DensityResolution{Lambda: *g.Density}
	}
	if (g.Min == nil) != (g.Max == nil) {
		return fmt.Errorf("%w: grid min and max must be given together", ErrInvalidScene)
	}
	if g.Min != nil {
		lo, err := toVec3(g.Min)
		if err != nil {
			return fmt.Errorf("%w: grid min: %v", ErrInvalidScene, err)
		}
		hi, err := toVec3(g.Max)
		if err != nil {
			return fmt.Errorf("%w: grid max: %v", ErrInvalidScene, err)
		}
		bounds := core.NewAABBFromPoints(lo, hi)
		cfg.Bounds = &bounds
	}
	return nil
}

func (m MaterialSpec) build() (*material.Material, error) {
	t := material.DiffuseAndGlossy
	if m.Type != "" {
		var err error
		if t, err = material.ParseType(m.Type); err != nil {
			return nil, err
		}
	}

	var color material.ColorSource
	switch {
	case m.Checker != nil && m.Color != nil:
		return nil, errors.New("color and checker are mutually exclusive")
	case m.Checker != nil:
		checker := material.NewCheckerboard()
		if m.Checker.Even != nil {
			v, err := toVec3(m.Checker.Even)
			if err != nil {
				return nil, fmt.Errorf("checker even: %w", err)
			}
			checker.Even = v
		}
		if m.Checker.Odd != nil {
			v, err := toVec3(m.Checker.Odd)
			if err != nil {
				return nil, fmt.Errorf("checker odd: %w", err)
			}
			checker.Odd = v
		}
		if m.Checker.Size > 0 {
			checker.Size = m.Checker.Size
		}
		color = checker
	case m.Color != nil:
		v, err := toVec3(m.Color)
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		color = material.NewSolidColor(v)
	}

	mat := material.NewMaterial(t, color)
	if m.Kd != nil {
		mat.Kd = *m.Kd
	}
	if m.Ks != nil {
		mat.Ks = *m.Ks
	}
	if m.Phong != nil {
		mat.PhongExponent = *m.Phong
	}
	if m.IOR != nil {
		if *m.IOR <= 0 {
			return nil, fmt.Errorf("ior must be positive, got %g", *m.IOR)
		}
		mat.IOR = *m.IOR
	}
	if m.Opaque {
		mat.IOR = material.OpaqueIOR
	}
	return mat, nil
}

func (o ObjectSpec) build() (geometry.Shape, error) {
	switch o.Type {
	case "sphere":
		center, err := toVec3(o.Center)
		if err != nil {
			return nil, fmt.Errorf("sphere center: %w", err)
		}
		if o.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive, got %g", o.Radius)
		}
		return geometry.NewSphere(center, o.Radius), nil
	case "box":
		center, err := toVec3(o.Center)
		if err != nil {
			return nil, fmt.Errorf("box center: %w", err)
		}
		if o.Side <= 0 {
			return nil, fmt.Errorf("box side must be positive, got %g", o.Side)
		}
		return geometry.NewBox(center, o.Side), nil
	case "plane":
		point, err := toVec3(o.Point)
		if err != nil {
			return nil, fmt.Errorf("plane point: %w", err)
		}
		normal, err := toVec3(o.Normal)
		if err != nil {
			return nil, fmt.Errorf("plane normal: %w", err)
		}
		if normal.LengthSquared() == 0 {
			return nil, errors.New("plane normal must not be zero")
		}
		return geometry.NewPlane(point, normal), nil
	default:
		return nil, fmt.Errorf("unknown object type %q", o.Type)
	}
}

func (l LightSpec) build() (lights.Light, error) {
	color := core.NewVec3(1, 1, 1)
	if l.Color != nil {
		v, err := toVec3(l.Color)
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		color = v
	}

	switch l.Type {
	case "", "point":
		position, err := toVec3(l.Position)
		if err != nil {
			return nil, fmt.Errorf("position: %w", err)
		}
		return lights.NewPointLight(position, color), nil
	case "directional":
		direction, err := toVec3(l.Direction)
		if err != nil {
			return nil, fmt.Errorf("direction: %w", err)
		}
		if direction.LengthSquared() == 0 {
			return nil, errors.New("direction must not be zero")
		}
		return lights.NewDirectionalLight(direction, color), nil
	default:
		return nil, fmt.Errorf("unknown light type %q", l.Type)
	}
}

func toVec3(v []float64) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(v))
	}
	out := core.NewVec3(v[0], v[1], v[2])
	if !out.IsFinite() {
		return core.Vec3{}, fmt.Errorf("non-finite vector %v", v)
	}
	return out, nil
}
