package geometry

import (
	"math"

	"github.com/df07/go-grid-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// FindIntersection tests if a ray intersects with the sphere
func (s *Sphere) FindIntersection(ray core.Ray) (Intersection, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return Intersection{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= core.RayEpsilon {
		// Origin is inside the sphere (or the sphere is behind it)
		root = (-halfB + sqrtD) / a
		if root <= core.RayEpsilon {
			return Intersection{}, false
		}
	}

	point := ray.At(root)
	return Intersection{T: root, UV: s.uv(point)}, true
}

// uv returns spherical coordinates of a surface point in [0,1]²
func (s *Sphere) uv(point core.Vec3) core.Vec2 {
	p := point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// NormalAt returns the outward normal (from center to point)
func (s *Sphere) NormalAt(point core.Vec3, _ Intersection) core.Vec3 {
	return point.Subtract(s.Center).Multiply(1.0 / s.Radius)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// Bounded is always true for spheres
func (s *Sphere) Bounded() bool { return true }
