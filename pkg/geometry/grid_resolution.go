package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-grid-raytracer/pkg/core"
)

// DefaultGridResolution is the per-axis cell count of FixedResolution{}
const DefaultGridResolution = 5

// maxDensityResolution caps DensityResolution on each axis
const maxDensityResolution = 128

// ResolutionPolicy chooses the number of cells per axis for a grid
type ResolutionPolicy interface {
	Resolution(bounds core.AABB, objectCount int) [3]int
	fmt.Stringer
}

// FixedResolution uses the same cell count on every axis
type FixedResolution struct {
	N int // Cells per axis; DefaultGridResolution when <= 0
}

// Resolution returns N cells on every axis
func (f FixedResolution) Resolution(core.AABB, int) [3]int {
	n := f.N
	if n <= 0 {
		n = DefaultGridResolution
	}
	return [3]int{n, n, n}
}

func (f FixedResolution) String() string {
	n := f.N
	if n <= 0 {
		n = DefaultGridResolution
	}
	return fmt.Sprintf("fixed(%d)", n)
}

// DensityResolution sizes cells so that each holds about Lambda objects:
// res[i] = floor(size[i] * cbrt(Lambda * N / volume)).
type DensityResolution struct {
	Lambda float64 // Target density; 5 when <= 0
}

// Resolution applies the density formula, falling back to FixedResolution
// when the bounds have no volume
func (d DensityResolution) Resolution(bounds core.AABB, objectCount int) [3]int {
	lambda := d.Lambda
	if lambda <= 0 {
		lambda = 5
	}

	volume := bounds.Volume()
	if volume <= 0 || objectCount == 0 || math.IsInf(volume, 0) || math.IsNaN(volume) {
		return FixedResolution{}.Resolution(bounds, objectCount)
	}

	density := math.Cbrt(lambda * float64(objectCount) / volume)
	size := bounds.Size().Array()
	var res [3]int
	for i := 0; i < 3; i++ {
		res[i] = clampInt(int(math.Floor(size[i]*density)), 1, maxDensityResolution)
	}
	return res
}

func (d DensityResolution) String() string {
	lambda := d.Lambda
	if lambda <= 0 {
		lambda = 5
	}
	return fmt.Sprintf("density(λ=%g)", lambda)
}

// clampInt clamps v into [lo, hi]
func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
