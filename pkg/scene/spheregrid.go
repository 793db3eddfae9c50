package scene

import (
	"math"

	"github.com/df07/go-grid-raytracer/pkg/core"
	"github.com/df07/go-grid-raytracer/pkg/geometry"
	"github.com/df07/go-grid-raytracer/pkg/lights"
	"github.com/df07/go-grid-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// SphereGridSize is the number of spheres along each side of the sphere grid scene
const SphereGridSize = 20

// NewSphereGridScene creates a SphereGridSize x SphereGridSize field of small
// spheres on a plane. Many small objects make it the stress case for the
// uniform grid.
func NewSphereGridScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(4.5, 6, 18),
		LookAt:      core.NewVec3(4.5, 0.8, 4.5),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 16.0 / 9.0,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	samplingConfig := DefaultSamplingConfig()
	samplingConfig.Width = 800
	samplingConfig.Height = 450
	samplingConfig.AntiAliasing = 3
	samplingConfig.Background = core.NewVec3(0.5, 0.7, 1.0)

	s := &Scene{
		Name:           "spheregrid",
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
		Accel:          AccelGrid,
		// Density sizing gives roughly five spheres per cell
		GridConfig: geometry.GridConfig{Resolution: geometry.DensityResolution{Lambda: 5}},
	}

	s.AddLight(lights.NewPointLight(core.NewVec3(20, 25, 20), core.NewVec3(1.0, 0.96, 0.9)))

	ground := material.NewMaterial(material.DiffuseAndGlossy, material.NewSolidColor(core.NewVec3(0.5, 0.5, 0.5)))
	ground.Ks = 0
	s.AddObject("ground", geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), ground)

	// Fit the grid in roughly 9x9 units centered on the look-at point
	targetArea := 9.0
	spacing := targetArea / float64(SphereGridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < SphereGridSize; i++ {
		for j := 0; j < SphereGridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			// Hue varies across X, chroma across Z
			hue := (float64(i) / float64(SphereGridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(SphereGridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			// Every third sphere is polished
			mat := material.NewMaterial(material.DiffuseAndGlossy, material.NewSolidColor(color))
			if (i+j)%3 == 0 {
				mat.Type = material.DiffuseGlossyAndReflection
				mat.IOR = 1.5
			}
			s.AddObject("", geometry.NewSphere(position, sphereRadius), mat)
		}
	}

	return s
}
