package lights

import "github.com/df07/go-grid-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
)

// Light interface for sources that illuminate shading points directly
type Light interface {
	Type() LightType

	// Sample returns the light arriving at point
	// Direction points FROM the shading point TO the light
	Sample(point core.Vec3) LightSample
}

// LightSample contains information about the light arriving at a point
type LightSample struct {
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to the light; +Inf for directional lights
	Emission  core.Vec3 // Light colour/intensity
}
