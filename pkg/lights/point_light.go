package lights

import (
	"math"

	"github.com/df07/go-grid-raytracer/pkg/core"
)

// PointLight emits from a single position with no falloff
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, color core.Vec3) *PointLight {
	return &PointLight{Position: position, Color: color}
}

// Type returns the light type
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Sample returns the direction and distance from point to the light
func (pl *PointLight) Sample(point core.Vec3) LightSample {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()
	return LightSample{
		Direction: toLight.Normalize(),
		Distance:  distance,
		Emission:  pl.Color,
	}
}

// DirectionalLight lights every point from the same direction, like the sun
type DirectionalLight struct {
	Direction core.Vec3 // Direction the light travels
	Color     core.Vec3
}

// NewDirectionalLight creates a light travelling along direction
func NewDirectionalLight(direction, color core.Vec3) *DirectionalLight {
	return &DirectionalLight{Direction: direction.Normalize(), Color: color}
}

// Type returns the light type
func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Sample returns the reversed light direction at infinite distance
func (dl *DirectionalLight) Sample(core.Vec3) LightSample {
	return LightSample{
		Direction: dl.Direction.Negate(),
		Distance:  math.Inf(1),
		Emission:  dl.Color,
	}
}
