package geometry

import (
	"gonum.org/v1/gonum/stat"
)

// GridStats summarises how shapes are spread over the cells of a grid
type GridStats struct {
	Resolution        [3]int
	Cells             int     // Total number of cells
	OccupiedCells     int     // Cells holding at least one shape
	References        int     // Sum of shapes over all cells
	MaxPerCell        int     // Largest number of shapes in one cell
	MeanPerOccupied   float64 // Mean shapes per occupied cell
	StdDevPerOccupied float64 // Sample standard deviation of shapes per occupied cell
	Objects           int     // Shapes inserted into the grid
	Unbounded         int     // Shapes left out of the grid
}

// Occupancy returns the number of shapes in each occupied cell, in cell index order
func (g *Grid) Occupancy() []float64 {
	counts := make([]float64, 0, len(g.cells))
	for i := range g.cells {
		if n := len(g.cells[i].Objects); n > 0 {
			counts = append(counts, float64(n))
		}
	}
	return counts
}

// Stats computes occupancy statistics for the grid
func (g *Grid) Stats() GridStats {
	counts := g.Occupancy()
	stats := GridStats{
		Resolution:    g.resolution,
		Cells:         len(g.cells),
		OccupiedCells: len(counts),
		Objects:       g.bounded,
		Unbounded:     len(g.unbounded),
	}

	for _, c := range counts {
		stats.References += int(c)
		stats.MaxPerCell = max(stats.MaxPerCell, int(c))
	}

	switch len(counts) {
	case 0:
	case 1:
		stats.MeanPerOccupied = counts[0]
	default:
		stats.MeanPerOccupied, stats.StdDevPerOccupied = stat.MeanStdDev(counts, nil)
	}

	return stats
}
