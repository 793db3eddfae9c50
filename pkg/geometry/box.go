package geometry

import (
	"math"

	"github.com/df07/go-grid-raytracer/pkg/core"
)

// Box faces, reported in Intersection.Index
const (
	FaceNegX = iota
	FacePosX
	FaceNegY
	FacePosY
	FaceNegZ
	FacePosZ
)

// Box represents an axis-aligned cube
type Box struct {
	Center     core.Vec3 // Centroid of the box
	SideLength float64   // Length of every edge
	bbox       core.AABB // Cached bounds
}

// NewBox creates a cube with the given centroid and edge length
func NewBox(center core.Vec3, sideLength float64) *Box {
	half := core.NewVec3(sideLength/2, sideLength/2, sideLength/2)
	return &Box{
		Center:     center,
		SideLength: sideLength,
		bbox:       core.NewAABB(center.Subtract(half), center.Add(half)),
	}
}

// FindIntersection tests the ray against the six slabs of the box
func (b *Box) FindIntersection(ray core.Ray) (Intersection, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	nearFace, farFace := -1, -1

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)
		lo := b.bbox.Min.Axis(axis)
		hi := b.bbox.Max.Axis(axis)

		if direction == 0 {
			if origin < lo || origin > hi {
				return Intersection{}, false
			}
			continue
		}

		t1 := (lo - origin) / direction
		t2 := (hi - origin) / direction
		face1, face2 := 2*axis, 2*axis+1
		if t1 > t2 {
			t1, t2 = t2, t1
			face1, face2 = face2, face1
		}

		if t1 > tNear {
			tNear, nearFace = t1, face1
		}
		if t2 < tFar {
			tFar, farFace = t2, face2
		}
		if tNear > tFar {
			return Intersection{}, false
		}
	}

	t, face := tNear, nearFace
	if t <= core.RayEpsilon {
		// Origin inside the box: the exit face is the hit
		t, face = tFar, farFace
		if t <= core.RayEpsilon {
			return Intersection{}, false
		}
	}

	return Intersection{T: t, Index: face, UV: b.faceUV(ray.At(t), face)}, true
}

// faceUV maps a point on a face to [0,1]² using the two other axes
func (b *Box) faceUV(point core.Vec3, face int) core.Vec2 {
	axis := face / 2
	local := point.Subtract(b.bbox.Min).Multiply(1.0 / b.SideLength)
	switch axis {
	case 0:
		return core.NewVec2(local.Z, local.Y)
	case 1:
		return core.NewVec2(local.X, local.Z)
	default:
		return core.NewVec2(local.X, local.Y)
	}
}

// NormalAt returns the outward normal of the face that was hit
func (b *Box) NormalAt(_ core.Vec3, hit Intersection) core.Vec3 {
	switch hit.Index {
	case FaceNegX:
		return core.NewVec3(-1, 0, 0)
	case FacePosX:
		return core.NewVec3(1, 0, 0)
	case FaceNegY:
		return core.NewVec3(0, -1, 0)
	case FacePosY:
		return core.NewVec3(0, 1, 0)
	case FaceNegZ:
		return core.NewVec3(0, 0, -1)
	default:
		return core.NewVec3(0, 0, 1)
	}
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.bbox
}

// Bounded is always true for boxes
func (b *Box) Bounded() bool { return true }
