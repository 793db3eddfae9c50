package core

import "math"

// parallelEpsilon is the direction magnitude below which a ray is treated as
// parallel to a slab
const parallelEpsilon = 1e-8

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewEmptyAABB returns a box that contains nothing. The first ExtendBy turns
// it into a point box.
func NewEmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := NewEmptyAABB()
	for _, point := range points {
		box.ExtendBy(point)
	}
	return box
}

// ExtendBy enlarges the box so that it contains point
func (aabb *AABB) ExtendBy(point Vec3) {
	aabb.Min = Vec3{
		X: math.Min(aabb.Min.X, point.X),
		Y: math.Min(aabb.Min.Y, point.Y),
		Z: math.Min(aabb.Min.Z, point.Z),
	}
	aabb.Max = Vec3{
		X: math.Max(aabb.Max.X, point.X),
		Y: math.Max(aabb.Max.Y, point.Y),
		Z: math.Max(aabb.Max.Z, point.Z),
	}
}

// Intersect returns whether the ray hits the box and the parametric distance
// at which it enters. A ray starting inside the box hits with tNear <= 0.
func (aabb AABB) Intersect(ray Ray) (bool, float64) {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Axis(axis)
		max := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		if math.Abs(direction) < parallelEpsilon {
			if origin < min || origin > max {
				return false, 0
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false, 0
		}
	}

	if tMax < 0 {
		return false, 0
	}
	// Every axis was parallel and the origin is inside all slabs
	if math.IsInf(tMin, -1) {
		tMin = 0
	}
	return true, tMin
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	box := aabb
	box.ExtendBy(other.Min)
	box.ExtendBy(other.Max)
	return box
}

// Contains reports whether point lies inside or on the box
func (aabb AABB) Contains(point Vec3) bool {
	return point.X >= aabb.Min.X && point.X <= aabb.Max.X &&
		point.Y >= aabb.Min.Y && point.Y <= aabb.Max.Y &&
		point.Z >= aabb.Min.Z && point.Z <= aabb.Max.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Volume returns the product of the extents
func (aabb AABB) Volume() float64 {
	size := aabb.Size()
	return size.X * size.Y * size.Z
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0 // X axis
	}
	if size.Y > size.Z {
		return 1 // Y axis
	}
	return 2 // Z axis
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// IsEmpty reports whether nothing has been added to a box made by NewEmptyAABB
func (aabb AABB) IsEmpty() bool {
	return !aabb.IsValid()
}

// IsFinite reports whether both corners are finite
func (aabb AABB) IsFinite() bool {
	return aabb.Min.IsFinite() && aabb.Max.IsFinite()
}
