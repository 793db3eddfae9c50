package integrator

import (
	"github.com/df07/go-grid-raytracer/pkg/core"
	"github.com/df07/go-grid-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color seen along a primary ray. Implementations
	// must be safe for concurrent use.
	RayColor(ray core.Ray, s *scene.Scene) core.Vec3
}
