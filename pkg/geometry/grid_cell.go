package geometry

import "github.com/df07/go-grid-raytracer/pkg/core"

// Cell holds handles of the shapes whose bounds overlap one grid cell.
// The zero Cell is an empty cell and costs no allocation.
type Cell struct {
	Objects []int // Indices into the grid's shape table, in insertion order
}

func (c *Cell) insert(object int) {
	c.Objects = append(c.Objects, object)
}

// Occupied reports whether any shape overlaps the cell
func (c Cell) Occupied() bool {
	return len(c.Objects) > 0
}

// intersect tests every shape in the cell and replaces best with any hit that
// is strictly nearer. Reports whether best was replaced.
func (c *Cell) intersect(shapes []Shape, ray core.Ray, best *Hit) bool {
	found := false
	for _, object := range c.Objects {
		hit, ok := shapes[object].FindIntersection(ray)
		if ok && hit.T < best.T {
			best.Intersection = hit
			best.Object = object
			found = true
		}
	}
	return found
}
