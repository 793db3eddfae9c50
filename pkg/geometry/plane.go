package geometry

import (
	"math"

	"github.com/df07/go-grid-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Normal vector (normalized)
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal.Normalize(),
	}
}

// FindIntersection tests if a ray intersects with the plane
func (p *Plane) FindIntersection(ray core.Ray) (Intersection, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel to the plane
	if math.Abs(denominator) < 1e-4 {
		return Intersection{}, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < core.RayEpsilon {
		return Intersection{}, false
	}

	hitPoint := ray.At(t)
	return Intersection{T: t, UV: core.NewVec2(hitPoint.X, hitPoint.Z)}, true
}

// NormalAt returns the plane normal regardless of the point
func (p *Plane) NormalAt(core.Vec3, Intersection) core.Vec3 {
	return p.Normal
}

// BoundingBox returns an infinite box; see Bounded
func (p *Plane) BoundingBox() core.AABB {
	inf := math.Inf(1)
	return core.NewAABB(
		core.NewVec3(-inf, -inf, -inf),
		core.NewVec3(inf, inf, inf),
	)
}

// Bounded is always false: a plane has no finite extent and is kept out of the grid
func (p *Plane) Bounded() bool { return false }
