package scene

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/df07/go-grid-raytracer/pkg/core"
	"github.com/df07/go-grid-raytracer/pkg/geometry"
	"github.com/df07/go-grid-raytracer/pkg/lights"
	"github.com/df07/go-grid-raytracer/pkg/material"
)

// Accelerator names accepted by Scene.Accel
const (
	AccelGrid   = "grid"
	AccelLinear = "linear"
)

var (
	// ErrUnknownAccelerator is returned by Preprocess for an unrecognised Accel
	ErrUnknownAccelerator = errors.New("unknown accelerator")
	// ErrInvalidObject is returned by Preprocess when an object has no shape or material
	ErrInvalidObject = errors.New("invalid scene object")
)

// Object pairs a shape with the material it is shaded with
type Object struct {
	Name     string
	Shape    geometry.Shape
	Material *material.Material
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Objects        []Object       // Objects in the scene, indexed by Hit.Object
	Lights         []lights.Light // Lights in the scene
	SamplingConfig SamplingConfig
	Accel          string              // AccelGrid (default) or AccelLinear
	GridConfig     geometry.GridConfig // Used when Accel is AccelGrid

	shapes []geometry.Shape
	accel  geometry.Accelerator
	grid   *geometry.Grid
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width        int       // Image width
	Height       int       // Image height
	AntiAliasing int       // Samples per pixel axis; n*n rays per pixel
	MaxDepth     int       // Maximum recursion depth for reflected and refracted rays
	Bias         float64   // Offset applied to secondary ray origins
	Ambient      float64   // Ambient light intensity
	Background   core.Vec3 // Color of rays that hit nothing
	Gamma        float64   // Output gamma
}

// DefaultSamplingConfig returns the default render settings
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:        1080,
		Height:       720,
		AntiAliasing: 5,
		MaxDepth:     5,
		Bias:         0.01,
		Ambient:      0.4,
		Background:   core.NewVec3(201.0/255.0, 226.0/255.0, 255.0/255.0),
		Gamma:        1.0,
	}
}

// MergeSamplingConfig overlays the non-zero fields of override onto base.
// A zero Ambient or a black Background in override keeps the base value;
// scene files set those fields directly instead.
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.AntiAliasing > 0 {
		result.AntiAliasing = override.AntiAliasing
	}
	if override.MaxDepth > 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Bias > 0 {
		result.Bias = override.Bias
	}
	if override.Ambient > 0 {
		result.Ambient = override.Ambient
	}
	if override.Background != (core.Vec3{}) {
		result.Background = override.Background
	}
	if override.Gamma > 0 {
		result.Gamma = override.Gamma
	}
	return result
}

// AddObject appends a shape with its material
func (s *Scene) AddObject(name string, shape geometry.Shape, mat *material.Material) {
	s.Objects = append(s.Objects, Object{Name: name, Shape: shape, Material: mat})
}

// AddLight appends a light
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// Preprocess prepares the scene for rendering: it validates the objects,
// builds the camera and builds the acceleration structure. It must be called
// again after objects are added.
func (s *Scene) Preprocess(logger logrus.FieldLogger) error {
	s.shapes = make([]geometry.Shape, len(s.Objects))
	for i, obj := range s.Objects {
		if obj.Shape == nil || obj.Material == nil {
			return fmt.Errorf("%w: object %d (%q) needs a shape and a material", ErrInvalidObject, i, obj.Name)
		}
		s.shapes[i] = obj.Shape
	}

	cfg := s.SamplingConfig
	if cfg.Width > 0 && cfg.Height > 0 {
		s.CameraConfig.AspectRatio = float64(cfg.Width) / float64(cfg.Height)
	}
	s.Camera = geometry.NewCamera(s.CameraConfig)

	s.grid = nil
	switch s.Accel {
	case "", AccelGrid:
		gridConfig := s.GridConfig
		if gridConfig.Logger == nil {
			gridConfig.Logger = logger
		}
		accel := geometry.NewGridAccelerator(s.shapes, s.Lights, gridConfig)
		s.accel = accel
		s.grid = accel.Grid
	case AccelLinear:
		s.accel = geometry.NewLinearScan(s.shapes)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAccelerator, s.Accel)
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"scene":   s.Name,
			"objects": len(s.Objects),
			"lights":  len(s.Lights),
			"accel":   s.AccelName(),
		}).Info("Scene ready")
	}
	return nil
}

// Intersect returns the nearest object hit by ray. Preprocess must have been called.
func (s *Scene) Intersect(ray core.Ray) (geometry.Hit, bool) {
	if s.accel == nil {
		return geometry.Hit{}, false
	}
	return s.accel.Intersect(ray)
}

// Shapes returns the shape table the accelerator indexes into
func (s *Scene) Shapes() []geometry.Shape {
	return s.shapes
}

// Grid returns the uniform grid, or nil when another accelerator is in use
func (s *Scene) Grid() *geometry.Grid {
	return s.grid
}

// AccelName returns the accelerator in use
func (s *Scene) AccelName() string {
	if s.Accel == "" {
		return AccelGrid
	}
	return s.Accel
}
