package scene

import (
	"github.com/df07/go-grid-raytracer/pkg/core"
	"github.com/df07/go-grid-raytracer/pkg/geometry"
	"github.com/df07/go-grid-raytracer/pkg/lights"
	"github.com/df07/go-grid-raytracer/pkg/material"
)

// NewBoxesScene creates a staircase of cubes with a mirror cube and a glass
// sphere, lit by a point light and a directional light
func NewBoxesScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(3, 2.5, 4),
		LookAt:      core.NewVec3(0, 0, -2),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60,
		AspectRatio: 4.0 / 3.0,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	samplingConfig := DefaultSamplingConfig()
	samplingConfig.Width = 640
	samplingConfig.Height = 480
	samplingConfig.AntiAliasing = 3

	s := &Scene{
		Name:           "boxes",
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
		Accel:          AccelGrid,
	}

	floor := material.NewMaterial(material.DiffuseAndGlossy, &material.Checkerboard{
		Even: core.NewVec3(0.2, 0.2, 0.25),
		Odd:  core.NewVec3(0.9, 0.9, 0.85),
		Size: 0.5,
	})
	s.AddObject("floor", geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), floor)

	// Each step sits on the floor and is half a unit taller than the last
	for i := 0; i < 5; i++ {
		side := 0.5 + 0.25*float64(i)
		center := core.NewVec3(-2+float64(i), -1+side/2, -3+0.4*float64(i))
		color := oklchToRGB(0.7, 0.15, 60*float64(i))
		s.AddObject("step", geometry.NewBox(center, side), material.NewDiffuse(color))
	}

	mirror := material.NewMirror(material.OpaqueIOR)
	s.AddObject("mirror cube", geometry.NewBox(core.NewVec3(1.5, -0.4, -0.5), 1.2), mirror)
	s.AddObject("glass sphere", geometry.NewSphere(core.NewVec3(-0.5, -0.4, -0.5), 0.6), material.NewGlass(whiteLight, 1.5))

	s.AddLight(lights.NewPointLight(core.NewVec3(-4, 6, 4), core.NewVec3(0.8, 0.8, 0.8)))
	s.AddLight(lights.NewDirectionalLight(core.NewVec3(1, -2, -1), core.NewVec3(0.3, 0.3, 0.35)))

	return s
}
