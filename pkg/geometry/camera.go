package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-grid-raytracer/pkg/core"
)

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Center      core.Vec3 // Eye position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Reference up direction
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// DefaultCameraConfig looks down -Z from slightly below the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, -0.2, 0),
		LookAt:      core.NewVec3(0, -0.2, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 1080.0 / 720.0,
	}
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov > 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio > 0 {
		result.AspectRatio = override.AspectRatio
	}
	return result
}

// Camera generates primary rays
type Camera struct {
	origin     core.Vec3
	toWorld    mgl64.Mat4 // Camera space (looking down -Z) to world space
	halfWidth  float64
	halfHeight float64
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	aspect := config.AspectRatio
	if aspect <= 0 {
		aspect = 1
	}
	vfov := config.VFov
	if vfov <= 0 || vfov >= 180 {
		vfov = 90
	}

	forward := config.LookAt.Subtract(config.Center)
	if forward.LengthSquared() == 0 {
		forward = core.NewVec3(0, 0, -1)
	}
	up := config.Up
	if forward.Cross(up).LengthSquared() < 1e-12 {
		// Up is parallel to the view direction; any perpendicular will do
		up = core.NewVec3(0, 0, 1)
		if forward.Cross(up).LengthSquared() < 1e-12 {
			up = core.NewVec3(1, 0, 0)
		}
	}

	eye := toMgl(config.Center)
	view := mgl64.LookAtV(eye, eye.Add(toMgl(forward)), toMgl(up))

	halfHeight := math.Tan(mgl64.DegToRad(vfov) / 2)
	return &Camera{
		origin:     config.Center,
		toWorld:    view.Inv(),
		halfWidth:  halfHeight * aspect,
		halfHeight: halfHeight,
	}
}

// GetRay returns the unit ray through screen position (s, t), where (0,0)
// is the top-left corner of the image and (1,1) the bottom-right
func (c *Camera) GetRay(s, t float64) core.Ray {
	x := (2*s - 1) * c.halfWidth
	y := (1 - 2*t) * c.halfHeight
	direction := c.toWorld.Mul4x1(mgl64.Vec4{x, y, -1, 0})
	return core.NewRay(c.origin, core.NewVec3(direction[0], direction[1], direction[2]).Normalize())
}

// Origin returns the eye position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
