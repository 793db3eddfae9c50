package geometry

import (
	"github.com/df07/go-grid-raytracer/pkg/core"
	"github.com/df07/go-grid-raytracer/pkg/lights"
)

// LinearScan tests every shape for every ray
type LinearScan struct {
	shapes  []Shape
	indices []int // nil means every shape
}

// NewLinearScan creates a brute-force accelerator over all shapes
func NewLinearScan(shapes []Shape) *LinearScan {
	return &LinearScan{shapes: shapes}
}

// newLinearScanSubset scans only the listed shape indices
func newLinearScanSubset(shapes []Shape, indices []int) *LinearScan {
	if indices == nil {
		indices = []int{}
	}
	return &LinearScan{shapes: shapes, indices: indices}
}

// Intersect returns the nearest hit; ties keep the earlier shape
func (l *LinearScan) Intersect(ray core.Ray) (Hit, bool) {
	closest := Hit{Object: -1}
	hitAnything := false

	test := func(object int) {
		hit, ok := l.shapes[object].FindIntersection(ray)
		if ok && (!hitAnything || hit.T < closest.T) {
			closest = Hit{Intersection: hit, Object: object}
			hitAnything = true
		}
	}

	if l.indices == nil {
		for object := range l.shapes {
			test(object)
		}
	} else {
		for _, object := range l.indices {
			test(object)
		}
	}

	return closest, hitAnything
}

// GridAccelerator combines a uniform grid over bounded shapes with a linear
// scan of the unbounded ones (planes)
type GridAccelerator struct {
	Grid      *Grid
	unbounded *LinearScan
}

// NewGridAccelerator builds the grid and the fallback scan
func NewGridAccelerator(shapes []Shape, sceneLights []lights.Light, cfg GridConfig) *GridAccelerator {
	grid := NewGrid(shapes, sceneLights, cfg)
	return &GridAccelerator{
		Grid:      grid,
		unbounded: newLinearScanSubset(shapes, grid.Unbounded()),
	}
}

// Intersect returns the nearer of the grid hit and the unbounded-shape hit
func (a *GridAccelerator) Intersect(ray core.Ray) (Hit, bool) {
	hit, ok := a.Grid.Intersect(ray)
	if other, otherOK := a.unbounded.Intersect(ray); otherOK && (!ok || other.T < hit.T) {
		return other, true
	}
	return hit, ok
}
