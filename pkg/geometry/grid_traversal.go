package geometry

import (
	"math"

	"github.com/df07/go-grid-raytracer/pkg/core"
)

// TraversalStep records one cell visited by a grid walk
type TraversalStep struct {
	Cell    [3]int  // Cell coordinate
	Objects int     // Shapes tested in the cell
	Axis    int     // Axis whose boundary is crossed next (0=X, 1=Y, 2=Z)
	ExitT   float64 // Distance along the ray at which that boundary is crossed
}

// Intersect walks the ray through the grid cell by cell (3-D DDA) and returns
// the nearest hit among the shapes in the cells it visits. Unbounded shapes
// are not tested.
func (g *Grid) Intersect(ray core.Ray) (Hit, bool) {
	return g.traverse(ray, nil)
}

// Trace is Intersect that also returns every cell visited, in order
func (g *Grid) Trace(ray core.Ray) ([]TraversalStep, Hit, bool) {
	var steps []TraversalStep
	hit, ok := g.traverse(ray, func(step TraversalStep) {
		steps = append(steps, step)
	})
	return steps, hit, ok
}

func (g *Grid) traverse(ray core.Ray, visit func(TraversalStep)) (Hit, bool) {
	if g.Empty() {
		return Hit{}, false
	}
	hitBounds, tNear := g.bounds.Intersect(ray)
	if !hitBounds {
		return Hit{}, false
	}
	// A ray starting inside the grid starts in its own cell
	tStart := math.Max(tNear, 0)

	origin := ray.Origin.Array()
	direction := ray.Direction.Array()
	gridMin := g.bounds.Min.Array()
	inf := math.Inf(1)

	var cell, step, exit [3]int
	var deltaT, nextCrossingT [3]float64
	for i := 0; i < 3; i++ {
		local := origin[i] + tStart*direction[i] - gridMin[i]
		cell[i] = g.cellCoord(local, i)

		switch {
		case direction[i] == 0 || g.cellSize[i] == 0:
			// Never crosses a boundary on this axis
			deltaT[i] = inf
			nextCrossingT[i] = inf
			step[i] = 1
			exit[i] = g.resolution[i]
		case direction[i] < 0:
			deltaT[i] = -g.cellSize[i] / direction[i]
			nextCrossingT[i] = tStart + (float64(cell[i])*g.cellSize[i]-local)/direction[i]
			step[i] = -1
			exit[i] = -1
		default:
			deltaT[i] = g.cellSize[i] / direction[i]
			nextCrossingT[i] = tStart + (float64(cell[i]+1)*g.cellSize[i]-local)/direction[i]
			step[i] = 1
			exit[i] = g.resolution[i]
		}
	}

	best := Hit{Object: -1}
	best.T = inf
	found := false
	for {
		current := &g.cells[g.cellIndex(cell[0], cell[1], cell[2])]
		if current.Occupied() && current.intersect(g.shapes, ray, &best) {
			found = true
		}

		// Smallest crossing distance; ties go to the lower axis
		axis := 0
		if nextCrossingT[1] < nextCrossingT[axis] {
			axis = 1
		}
		if nextCrossingT[2] < nextCrossingT[axis] {
			axis = 2
		}

		if visit != nil {
			visit(TraversalStep{
				Cell:    cell,
				Objects: len(current.Objects),
				Axis:    axis,
				ExitT:   nextCrossingT[axis],
			})
		}

		// Cells are visited in increasing distance, so nothing beyond this
		// boundary can be nearer than the hit we hold
		if found && best.T < nextCrossingT[axis] {
			break
		}
		// The ray only moves along collapsed axes and never leaves this cell
		if math.IsInf(nextCrossingT[axis], 1) {
			break
		}

		nextCrossingT[axis] += deltaT[axis]
		cell[axis] += step[axis]
		if cell[axis] == exit[axis] {
			break
		}
	}

	if !found {
		return Hit{}, false
	}
	return best, true
}
