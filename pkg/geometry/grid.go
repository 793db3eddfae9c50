package geometry

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/df07/go-grid-raytracer/pkg/core"
	"github.com/df07/go-grid-raytracer/pkg/lights"
)

// GridConfig controls how a uniform grid is built
type GridConfig struct {
	Resolution ResolutionPolicy   // nil means FixedResolution{N: DefaultGridResolution}
	Bounds     *core.AABB         // Optional box unioned into the computed grid bounds
	Logger     logrus.FieldLogger // Optional; construction is logged at debug level
}

// Grid is a uniform grid over the bounded shapes of a scene. It is read-only
// once built and safe for concurrent Intersect calls.
type Grid struct {
	shapes     []Shape
	bounds     core.AABB
	resolution [3]int
	cellSize   [3]float64
	cells      []Cell
	bounded    int   // Number of shapes inserted into cells
	unbounded  []int // Shapes left out of the grid
}

// NewGrid builds a grid over shapes. Shapes are referenced by index, so the
// slice must outlive the grid and must not be reordered. Lights are not used
// to place cells.
func NewGrid(shapes []Shape, sceneLights []lights.Light, cfg GridConfig) *Grid {
	g := &Grid{shapes: shapes}

	// Grow the bounds around every finite shape
	bounds := core.NewEmptyAABB()
	insertable := make([]int, 0, len(shapes))
	for i, shape := range shapes {
		if !shape.Bounded() || !shape.BoundingBox().IsFinite() {
			g.unbounded = append(g.unbounded, i)
			continue
		}
		box := shape.BoundingBox()
		bounds.ExtendBy(box.Min)
		bounds.ExtendBy(box.Max)
		insertable = append(insertable, i)
	}
	if cfg.Bounds != nil && cfg.Bounds.IsValid() {
		bounds = bounds.Union(*cfg.Bounds)
	}
	if bounds.IsEmpty() {
		// Nothing to partition: degenerate box at the origin, one empty cell
		bounds = core.AABB{}
	}
	g.bounds = bounds
	g.bounded = len(insertable)

	policy := cfg.Resolution
	if policy == nil {
		policy = FixedResolution{N: DefaultGridResolution}
	}
	g.resolution = policy.Resolution(bounds, len(insertable))

	size := bounds.Size().Array()
	for i := 0; i < 3; i++ {
		if g.resolution[i] < 1 {
			g.resolution[i] = 1
		}
		// A flat axis is a single cell of zero width
		if size[i] <= 0 {
			g.resolution[i] = 1
			g.cellSize[i] = 0
			continue
		}
		g.cellSize[i] = size[i] / float64(g.resolution[i])
	}

	g.cells = make([]Cell, g.resolution[0]*g.resolution[1]*g.resolution[2])

	for _, object := range insertable {
		box := shapes[object].BoundingBox()
		lo := g.cellCoords(box.Min)
		hi := g.cellCoords(box.Max)
		for z := lo[2]; z <= hi[2]; z++ {
			for y := lo[1]; y <= hi[1]; y++ {
				for x := lo[0]; x <= hi[0]; x++ {
					g.cells[g.cellIndex(x, y, z)].insert(object)
				}
			}
		}
	}

	if cfg.Logger != nil {
		stats := g.Stats()
		cfg.Logger.WithFields(logrus.Fields{
			"objects":    g.bounded,
			"unbounded":  len(g.unbounded),
			"lights":     len(sceneLights),
			"policy":     policy.String(),
			"resolution": g.resolution,
			"cellSize":   g.cellSize,
			"boundsMin":  g.bounds.Min,
			"boundsMax":  g.bounds.Max,
			"occupied":   stats.OccupiedCells,
			"references": stats.References,
		}).Debug("uniform grid built")
	}

	return g
}

// cellCoord maps a grid-local coordinate on one axis to a clamped cell index
func (g *Grid) cellCoord(local float64, axis int) int {
	if g.cellSize[axis] == 0 {
		return 0
	}
	return clampInt(int(math.Floor(local/g.cellSize[axis])), 0, g.resolution[axis]-1)
}

// cellCoords maps a world-space point to clamped cell coordinates
func (g *Grid) cellCoords(point core.Vec3) [3]int {
	local := point.Subtract(g.bounds.Min).Array()
	return [3]int{
		g.cellCoord(local[0], 0),
		g.cellCoord(local[1], 1),
		g.cellCoord(local[2], 2),
	}
}

// cellIndex flattens a cell coordinate: z*resY*resX + y*resX + x
func (g *Grid) cellIndex(x, y, z int) int {
	return z*g.resolution[1]*g.resolution[0] + y*g.resolution[0] + x
}

// Bounds returns the box enclosing every bounded shape
func (g *Grid) Bounds() core.AABB {
	return g.bounds
}

// Resolution returns the number of cells along each axis
func (g *Grid) Resolution() [3]int {
	return g.resolution
}

// CellSize returns the cell extent along each axis (0 on flat axes)
func (g *Grid) CellSize() [3]float64 {
	return g.cellSize
}

// NumCells returns the total number of cells
func (g *Grid) NumCells() int {
	return len(g.cells)
}

// Cell returns the cell at coordinate (x, y, z). Coordinates outside the grid
// return an empty cell.
func (g *Grid) Cell(x, y, z int) Cell {
	if x < 0 || y < 0 || z < 0 ||
		x >= g.resolution[0] || y >= g.resolution[1] || z >= g.resolution[2] {
		return Cell{}
	}
	return g.cells[g.cellIndex(x, y, z)]
}

// CellRange returns the inclusive cell coordinate range covered by a box,
// clamped to the grid
func (g *Grid) CellRange(box core.AABB) (lo, hi [3]int) {
	return g.cellCoords(box.Min), g.cellCoords(box.Max)
}

// Shapes returns the shape table the grid indexes into
func (g *Grid) Shapes() []Shape {
	return g.shapes
}

// Unbounded returns the indices of shapes that were not inserted into cells.
// Callers that need them must test them separately.
func (g *Grid) Unbounded() []int {
	return g.unbounded
}

// Empty reports whether no shape was inserted
func (g *Grid) Empty() bool {
	return g.bounded == 0
}
