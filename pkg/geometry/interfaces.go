package geometry

import (
	"github.com/df07/go-grid-raytracer/pkg/core"
)

// Intersection is what a shape reports about its nearest hit along a ray
type Intersection struct {
	T     float64   // Parametric distance along the ray
	Index int       // Sub-primitive index (face, triangle); 0 for simple shapes
	UV    core.Vec2 // Surface coordinates at the hit
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	// FindIntersection returns the nearest hit with t > core.RayEpsilon
	FindIntersection(ray core.Ray) (Intersection, bool)
	// NormalAt returns the outward unit normal at a point returned by FindIntersection
	NormalAt(point core.Vec3, hit Intersection) core.Vec3
	BoundingBox() core.AABB
	// Bounded reports whether BoundingBox is a finite box. Unbounded shapes
	// take no part in grid sizing or cell membership.
	Bounded() bool
}

// Hit is the nearest intersection found by an accelerator
type Hit struct {
	Intersection
	Object int // Index of the shape in the caller-owned shape table
}

// Accelerator finds the nearest shape hit by a ray
type Accelerator interface {
	Intersect(ray core.Ray) (Hit, bool)
}
