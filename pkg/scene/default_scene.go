package scene

import (
	"github.com/df07/go-grid-raytracer/pkg/core"
	"github.com/df07/go-grid-raytracer/pkg/geometry"
	"github.com/df07/go-grid-raytracer/pkg/lights"
	"github.com/df07/go-grid-raytracer/pkg/material"
)

var (
	maroon      = core.NewVec3(0.5, 0.25, 0.25)
	prettyGreen = core.NewVec3(0.5, 1.0, 0.5)
	whiteLight  = core.NewVec3(1, 1, 1)
)

// NewDefaultScene creates three glass spheres and two small diffuse spheres
// over a checkered floor, lit by a single point light
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Name:           "default",
		CameraConfig:   cameraConfig,
		SamplingConfig: DefaultSamplingConfig(),
		Accel:          AccelGrid,
	}

	s.AddObject("center glass", geometry.NewSphere(core.NewVec3(0, 0, -3), 1), material.NewGlass(prettyGreen, 1.015))
	s.AddObject("right glass", geometry.NewSphere(core.NewVec3(1.7, 0, -2.8), 0.6), material.NewGlass(maroon, 1.005))
	s.AddObject("left glass", geometry.NewSphere(core.NewVec3(-1.7, 0, -2.8), 0.6), material.NewGlass(maroon, 2.0))
	s.AddObject("far sphere", geometry.NewSphere(core.NewVec3(0, -0.7, -18.3), 0.3), material.NewDiffuse(maroon))
	s.AddObject("near sphere", geometry.NewSphere(core.NewVec3(0, -0.7, -1.7), 0.3), material.NewDiffuse(prettyGreen))

	// The floor is unbounded; it stays out of the grid and is tested on every ray
	floor := material.NewMaterial(material.DiffuseAndGlossy, material.NewCheckerboard())
	s.AddObject("floor", geometry.NewPlane(core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0)), floor)

	s.AddLight(lights.NewPointLight(core.NewVec3(-7, 5, 3), whiteLight))

	return s
}
