package material

import (
	"math"

	"github.com/df07/go-grid-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point.
	// Implementations must not keep per-hit state: rays are traced concurrently.
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checkerboard alternates two colors on unit squares of the XZ plane
type Checkerboard struct {
	Even core.Vec3 // floor(x)+floor(z) even
	Odd  core.Vec3 // floor(x)+floor(z) odd
	Size float64   // Edge length of a square; 1 when <= 0
}

// NewCheckerboard creates a black and white floor pattern with unit squares
func NewCheckerboard() *Checkerboard {
	return &Checkerboard{
		Even: core.NewVec3(0, 0, 0),
		Odd:  core.NewVec3(1, 1, 1),
		Size: 1,
	}
}

// Evaluate picks the square colour from the hit point
func (c *Checkerboard) Evaluate(_ core.Vec2, point core.Vec3) core.Vec3 {
	size := c.Size
	if size <= 0 {
		size = 1
	}
	tile := int(math.Floor(point.X/size)) + int(math.Floor(point.Z/size))
	if tile%2 == 0 {
		return c.Even
	}
	return c.Odd
}
